//go:build !windows

package cmd

import (
	"errors"

	"github.com/Norgate-AV/alreadyedge/internal/logger"
)

var errUnsupported = errors.New("alreadyedge requires Windows 11 and the Desktop Window Manager")

func openDesktop(_ logger.LoggerInterface) (*desktop, error) {
	return nil, errUnsupported
}
