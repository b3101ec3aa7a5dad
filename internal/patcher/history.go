package patcher

import (
	"fmt"
	"os"

	"github.com/sokinpui/tidydiff.go/internal/fs"
	"github.com/sokinpui/tidydiff.go/internal/state"
	"github.com/sokinpui/tidydiff.go/internal/unidiff"
)

// Revert undoes a recorded operation by applying its reversed diff. The file
// must still hold exactly what the operation wrote.
func Revert(op state.Operation) error {
	current, err := fs.ReadFileIfExists(op.Path)
	if err != nil {
		return err
	}
	if fs.HashString(current) != op.AfterHash {
		return fmt.Errorf("%s was modified after it was patched", op.Path)
	}

	restored := Apply(current, unidiff.Reverse(op.Diff))
	if fs.HashString(restored) != op.BeforeHash {
		return fmt.Errorf("reversed diff did not restore %s", op.Path)
	}

	if op.Action == fs.ActionCreate {
		if err := os.Remove(op.Path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", op.Path, err)
		}
		return nil
	}
	return fs.WriteFile(op.Path, restored)
}

// Reapply redoes a reverted operation. The file must hold exactly what it
// held before the operation first ran.
func Reapply(op state.Operation) error {
	current, err := fs.ReadFileIfExists(op.Path)
	if err != nil {
		return err
	}
	if fs.HashString(current) != op.BeforeHash {
		return fmt.Errorf("%s was modified after it was reverted", op.Path)
	}

	patched := Apply(current, op.Diff)
	if fs.HashString(patched) != op.AfterHash {
		return fmt.Errorf("diff did not reproduce %s", op.Path)
	}
	return fs.WriteFile(op.Path, patched)
}
