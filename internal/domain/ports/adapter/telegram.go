// File: internal/domain/ports/adapter/telegram.go
package adapter

type InlineButton struct {
	Text string
	Data string
	URL  string
}
