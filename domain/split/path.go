package split

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// DerivePath returns the output path for the 1-based index of a split of source.
// A source "<dir>/<stem>.<ext>" produces "<dir>/<stem>-<index>.<ext>".
func DerivePath(source string, index int) (string, error) {
	if index < 1 {
		return "", fmt.Errorf("%w: output index must be at least 1, got %d", ErrInvalidArgument, index)
	}

	dir, name := filepath.Split(source)
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return "", fmt.Errorf("%w: %q has no extension", ErrPathDerivation, source)
	}

	stem, ext := name[:dot], name[dot+1:]
	if stem == "" {
		return "", fmt.Errorf("%w: %q has no file stem", ErrPathDerivation, source)
	}
	if ext == "" {
		return "", fmt.Errorf("%w: %q has an empty extension", ErrPathDerivation, source)
	}

	return dir + stem + "-" + strconv.Itoa(index) + "." + ext, nil
}
