package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"navcard-cli/internal/model"
	"navcard-cli/internal/nav"
)

func newAddCmd(app *App) *cobra.Command {
	var level string
	var parent string
	var label string
	var title string
	var url string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry to the current card",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, card, f, err := loadForest(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			lv := model.Level(strings.TrimSpace(level))
			parent = strings.TrimSpace(parent)
			if parent != "" && !cmd.Flags().Changed("level") {
				// --parent without an explicit --level means "one deeper than
				// the parent".
				p, ok := f.Find(parent)
				if !ok {
					return writeChanged(cmd, app, nil, false, "parent not found: "+parent)
				}
				child, ok := p.Level.ChildLevel()
				if !ok {
					return writeChanged(cmd, app, nil, false, fmt.Sprintf("%s entries cannot have children", p.Level))
				}
				lv = child
			}
			switch lv {
			case model.LevelPrimary, model.LevelSecondary, model.LevelTertiary:
			default:
				return writeErr(cmd, fmt.Errorf("invalid level: %q", level))
			}

			res, err := nav.AddItem(f, lv, parent)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !res.Changed {
				return writeChanged(cmd, app, nil, false, addRefusalNotice(f, lv, parent))
			}

			node := res.Node
			payload := res.EventPayload
			fields := updateFieldsFromFlags(cmd, label, title, url)
			if fields.Label != nil || fields.PageTitle != nil || fields.URL != nil {
				up, err := nav.Update(f, node.ID, fields)
				if err != nil {
					return writeErr(cmd, err)
				}
				if up.Changed {
					node = up.Node
					for k, v := range up.EventPayload {
						payload[k] = v
					}
				}
			}

			_ = s.AppendEvent(cmd.Context(), card.ID, "node.add", node.ID, payload)
			return writeChanged(cmd, app, node, true, "")
		},
	}

	cmd.Flags().StringVar(&level, "level", string(model.LevelPrimary), "Entry level (primary|secondary|tertiary)")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent node id (empty = top level)")
	cmd.Flags().StringVar(&label, "label", "", "Entry label")
	cmd.Flags().StringVar(&title, "title", "", "Page title (pages cards)")
	cmd.Flags().StringVar(&url, "url", "", "URL (pages cards)")
	return cmd
}

// addRefusalNotice names why an add changed nothing, mirroring the engine's
// admission rules.
func addRefusalNotice(f *nav.Forest, level model.Level, parentID string) string {
	if parentID == "" {
		return fmt.Sprintf("top-level entries must be primary, not %s", level)
	}
	p, ok := f.Find(parentID)
	if !ok {
		return "parent not found: " + parentID
	}
	return fmt.Sprintf("a %s entry cannot sit under a %s parent", level, p.Level)
}

// updateFieldsFromFlags maps only the flags the user actually passed, so an
// explicit empty value clears a field while an omitted flag leaves it alone.
func updateFieldsFromFlags(cmd *cobra.Command, label, title, url string) nav.UpdateFields {
	fields := nav.UpdateFields{}
	if cmd.Flags().Changed("label") {
		fields.Label = &label
	}
	if cmd.Flags().Changed("title") {
		fields.PageTitle = &title
	}
	if cmd.Flags().Changed("url") {
		fields.URL = &url
	}
	return fields
}
