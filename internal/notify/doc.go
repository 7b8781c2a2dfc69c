// Package notify renders an ordered disposal report into a plain-text
// message and delivers it, currently via the Telegram Bot API. Rendering
// and transport are separate so either can be swapped independently.
package notify
