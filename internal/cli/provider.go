package cli

import (
	apperrors "github.com/agbru/fibsci/internal/errors"
	"github.com/agbru/fibsci/internal/ui"
)

// CLIColorProvider supplies the active theme's color codes to packages that
// cannot import ui directly.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

// Yellow returns the ANSI code for yellow text.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Reset returns the ANSI reset code.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }
