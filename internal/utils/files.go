package utils

import (
	"io"

	"github.com/entra-tools/ip-block-lists/internal/log"
)

func CloseOrWarn(file io.Closer) {
	if err := file.Close(); err != nil {
		log.Warnf("Failed to close file: %v", err)
	}
}
