//go:build !unix

package term

import "golang.org/x/xerrors"

func termSize(_ int) (int, int, error) {
	return 0, 0, xerrors.New("terminal size is not supported on this platform")
}
