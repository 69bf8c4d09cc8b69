package menu

import (
	"strings"

	"github.com/aretw0/menubot/pkg/domain"
	"github.com/shopspring/decimal"
)

// Strings is the localized reply table.
//
// Templates may use {{item}}, {{total}}, {{choice}} and {{kind}}.
// Totals are substituted without the currency sign.
type Strings struct {
	Prompt         string `json:"prompt" yaml:"prompt" mapstructure:"prompt" validate:"required"`
	Retry          string `json:"retry" yaml:"retry" mapstructure:"retry" validate:"required"`
	Greeting       string `json:"greeting" yaml:"greeting" mapstructure:"greeting" validate:"required"`
	Processed      string `json:"processed" yaml:"processed" mapstructure:"processed" validate:"required"`
	EmptyCart      string `json:"empty_cart" yaml:"empty_cart" mapstructure:"empty_cart" validate:"required"`
	Cancelled      string `json:"cancelled" yaml:"cancelled" mapstructure:"cancelled" validate:"required"`
	Added          string `json:"added" yaml:"added" mapstructure:"added" validate:"required"`
	MoreInfo       string `json:"more_info" yaml:"more_info" mapstructure:"more_info" validate:"required"`
	Help           string `json:"help" yaml:"help" mapstructure:"help" validate:"required"`
	Invalid        string `json:"invalid" yaml:"invalid" mapstructure:"invalid" validate:"required"`
	OrderCancelled string `json:"order_cancelled" yaml:"order_cancelled" mapstructure:"order_cancelled" validate:"required"`
	OrderTotal     string `json:"order_total" yaml:"order_total" mapstructure:"order_total" validate:"required"`
	Event          string `json:"event" yaml:"event" mapstructure:"event" validate:"required"`
}

func fill(tmpl string, pairs ...string) string {
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// Text returns the localized string table.
func (m *Menu) Text() Strings { return m.def.Strings }

// AddedText confirms an item selection and reports the running total.
func (m *Menu) AddedText(item Item, total decimal.Decimal) string {
	return fill(m.def.Strings.Added, "{{item}}", item.Description, "{{total}}", domain.FormatMoney(total))
}

// InvalidText reports a choice that maps to no command or item.
func (m *Menu) InvalidText(choice string) string {
	return fill(m.def.Strings.Invalid, "{{choice}}", choice)
}

// OrderTotalText is the summary sent when an order completes.
func (m *Menu) OrderTotalText(total decimal.Decimal) string {
	return fill(m.def.Strings.OrderTotal, "{{total}}", domain.FormatMoney(total))
}

// EventText is the passthrough notice for non-message activity.
func (m *Menu) EventText(kind string) string {
	return fill(m.def.Strings.Event, "{{kind}}", kind)
}

// InfoText is the more-info header followed by one line per item.
func (m *Menu) InfoText() string {
	var b strings.Builder
	b.WriteString(m.def.Strings.MoreInfo)
	for _, item := range m.def.Items {
		if item.Info == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(item.Description)
		b.WriteString(": ")
		b.WriteString(item.Info)
	}
	return b.String()
}
