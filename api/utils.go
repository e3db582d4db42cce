package api

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var sdkLogger *zap.Logger

func GetLogger() *zap.Logger {
	if sdkLogger == nil {
		var err error
		if sdkLogger, err = zap.NewDevelopment(); err != nil {
			sdkLogger = zap.NewNop()
		}
	}
	return sdkLogger
}
func SetNoLogger() {
	SetLogger(zap.NewNop())
}
func SetLogger(logger *zap.Logger) {
	sdkLogger = logger
}

// GetPcapFileFullPath resolves filename against the ~/.pcap folder,
// creating the folder on first use. Absolute paths and existing files are
// returned as-is.
func GetPcapFileFullPath(filename string) string {
	var fileFullPath string
	if strings.HasPrefix(filename, "~/") {
		home, _ := os.UserHomeDir()
		filename = filepath.Join(home, filename[2:])
	}
	info, err := os.Stat(filename)
	if err == nil {
		if !info.IsDir() {
			if fileFullPath, err = filepath.Abs(filename); err == nil {
				return fileFullPath
			}
		}
	}
	if path.IsAbs(filename) {
		return filename
	}

	if fileFullPath, err = os.UserHomeDir(); err != nil {
		GetLogger().Warn("Get User folder error", zap.Error(err))
		return filename
	}

	fileFullPath = path.Join(fileFullPath, ".pcap")
	if _, err = os.Stat(fileFullPath); err != nil {
		if os.IsNotExist(err) {
			if err = os.MkdirAll(fileFullPath, os.ModePerm); err != nil {
				GetLogger().Warn("Create .pcap folder error", zap.Error(err))
			}
		}
	}
	fileFullPath = path.Join(fileFullPath, filename)
	return fileFullPath
}

func SliceWhere[T any](s []T, wf func(T) bool) (result []T) {
	for _, e := range s {
		if wf(e) {
			result = append(result, e)
		}
	}
	return
}

func SliceSelect[TI any, TO any](si []TI, sf func(TI) TO) (result []TO) {
	for _, e := range si {
		result = append(result, sf(e))
	}
	return
}
