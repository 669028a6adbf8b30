// Package patch computes RFC 6902 JSON Patches between two documents and
// applies them.
//
// Patches are minimal edit scripts; they are a different view from the
// positional comparison tree and are not derived from it.
package patch

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/mcncl/semjson/internal/errors"
	"github.com/wI2L/jsondiff"
)

// Options controls patch generation
type Options struct {
	// Factorize emits move and copy operations where possible
	Factorize bool
	// Invertible precedes every remove and replace with a test operation
	Invertible bool
}

// Generate returns the patch that turns left into right. Equal documents yield
// an empty patch, encoded as [].
func Generate(left, right []byte, opts Options) ([]byte, error) {
	var diffOpts []jsondiff.Option
	if opts.Factorize {
		diffOpts = append(diffOpts, jsondiff.Factorize())
	}
	if opts.Invertible {
		diffOpts = append(diffOpts, jsondiff.Invertible())
	}

	ops, err := jsondiff.CompareJSON(left, right, diffOpts...)
	if err != nil {
		return nil, errors.NewCompareError("failed to generate patch", err)
	}
	if len(ops) == 0 {
		return []byte("[]"), nil
	}

	out, err := json.Marshal(ops)
	if err != nil {
		return nil, errors.NewFormatError("failed to encode patch", err)
	}
	return out, nil
}

// Apply applies patch to doc
func Apply(doc, patch []byte) ([]byte, error) {
	p, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, errors.NewParsingError("failed to decode patch", err)
	}

	out, err := p.Apply(doc)
	if err != nil {
		return nil, errors.NewCompareError("failed to apply patch", err)
	}
	return out, nil
}

// Verify checks that applying patch to left yields a document equal to right.
func Verify(left, right, patch []byte) error {
	out, err := Apply(left, patch)
	if err != nil {
		return err
	}
	if !jsonpatch.Equal(out, right) {
		return errors.NewCompareError("patched document differs from the right input", errors.ErrPatchMismatch)
	}
	return nil
}
