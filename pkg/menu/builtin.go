package menu

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// English returns the default dinner menu.
func English() *Menu {
	return MustNew(Definition{
		Locale: "en",
		Items: []Item{
			{Label: "Potato Salad - $5.99", Description: "Potato Salad", Price: decimal.RequireFromString("5.99"), Info: "contains 330 calories per serving."},
			{Label: "Tuna Sandwich - $6.89", Description: "Tuna Sandwich", Price: decimal.RequireFromString("6.89"), Info: "contains 700 calories per serving."},
			{Label: "Clam Chowder - $4.50", Description: "Clam Chowder", Price: decimal.RequireFromString("4.50"), Info: "contains 650 calories per serving."},
		},
		Commands: Commands{
			Checkout: CommandEntry{Label: "Process order", Pattern: "process order"},
			Cancel:   CommandEntry{Label: "Cancel", Pattern: "cancel"},
			MoreInfo: CommandEntry{Label: "More info", Pattern: "more info"},
			Help:     CommandEntry{Label: "Help", Pattern: "help"},
		},
		Strings: Strings{
			Prompt:         "What would you like for dinner?",
			Retry:          "Please choose an option from the list.",
			Greeting:       "Ready to take your order...",
			Processed:      "Your order has been processed.",
			EmptyCart:      "Your cart is empty. Please add items to your cart.",
			Cancelled:      "Your order has been canceled.",
			Added:          "Added {{item}} to your cart.\nCurrent total: ${{total}}",
			MoreInfo:       "More info:",
			Help:           "Help:\nTo make an order, add as many items to your cart as you like then choose the \"Process order\" option to check out.",
			Invalid:        "Sorry, \"{{choice}}\" is not on the menu.",
			OrderCancelled: "Your order was cancelled.",
			OrderTotal:     "Your total came to ${{total}}",
			Event:          "[{{kind}} event detected]",
		},
	})
}

// Spanish returns the Spanish dinner menu.
func Spanish() *Menu {
	return MustNew(Definition{
		Locale: "es",
		Items: []Item{
			{Label: "Ensalada de Papas - $5.99", Description: "Ensalada de Papas", Price: decimal.RequireFromString("5.99"), Info: "contiene 330 calorías por porción."},
			{Label: "Sandwich de Atun - $6.89", Description: "Sandwich de Atun", Price: decimal.RequireFromString("6.89"), Info: "contiene 700 calorías por porción."},
			{Label: "Sopa de Almejas - $4.50", Description: "Sopa de Almejas", Price: decimal.RequireFromString("4.50"), Info: "contiene 650 calorías por porción."},
		},
		Commands: Commands{
			Checkout: CommandEntry{Label: "Procesar orden", Pattern: "procesar orden"},
			Cancel:   CommandEntry{Label: "Cancel", Pattern: "cancel"},
			MoreInfo: CommandEntry{Label: "Mas info", Pattern: "mas info"},
			Help:     CommandEntry{Label: "Ayuda", Pattern: "ayuda"},
		},
		Strings: Strings{
			Prompt:         "Que desea ordenar?",
			Retry:          "Por favor elija una opción de la lista.",
			Greeting:       "Listo para tomar su orden...",
			Processed:      "Su orden ha sido procesada.",
			EmptyCart:      "Orden de pedido vacía. Por favor agregue elementos a la orden.",
			Cancelled:      "Su orden ha sido cancelada.",
			Added:          "Agregada {{item}} al pedido.\nTotal: ${{total}}",
			MoreInfo:       "Mas info:",
			Help:           "Ayuda:\nPara realizar una orden, agregue items al pedido y luego seleccione la opción \"Procesar orden\" para terminar.",
			Invalid:        "Lo sentimos, \"{{choice}}\" no está en el menú.",
			OrderCancelled: "Su orden ha sido cancelada.",
			OrderTotal:     "El total de su orden es de ${{total}}",
			Event:          "[evento {{kind}} detectado]",
		},
	})
}

// ByLocale returns a built-in menu by locale tag ("en", "es").
func ByLocale(locale string) (*Menu, error) {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "", "en", "en-us", "english":
		return English(), nil
	case "es", "es-es", "spanish":
		return Spanish(), nil
	default:
		return nil, fmt.Errorf("unknown locale %q", locale)
	}
}
