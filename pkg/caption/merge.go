// merge.go — Combine caller parameters with file name hints and style presets.
package caption

// DefaultPosition applies when neither the caller nor the file name gives one.
const DefaultPosition = PositionText("top-left")

// Merge applies a file name hint to the caller's parameters.
//
// The two halves of the hint are treated differently: a caller-supplied
// position always beats the hinted one, while a hinted font size always
// beats the caller's. Both behaviors are relied on by existing file sets.
func Merge(p Params, h Hint) Params {
	merged := p

	if merged.Position == nil {
		if h.Position != nil {
			merged.Position = *h.Position
			Logger().Debug("caption: position from file name", "position", h.Position.String())
		} else {
			merged.Position = DefaultPosition
		}
	}

	if h.FontSize != nil {
		merged.FontSize = *h.FontSize
		Logger().Debug("caption: font size from file name", "size", *h.FontSize)
	}

	return merged
}

// mergeStyle applies non-zero fields of over onto base.
func mergeStyle(base *StyleFile, over StyleFile) {
	if over.Font != "" {
		base.Font = over.Font
	}
	if over.FontSize > 0 {
		base.FontSize = over.FontSize
	}
	if over.Color != "" {
		base.Color = over.Color
	}
	if over.Position != "" {
		base.Position = over.Position
	}
	if over.OutlineColor != "" {
		base.OutlineColor = over.OutlineColor
	}
	if over.OutlineWidth > 0 {
		base.OutlineWidth = over.OutlineWidth
	}
}
