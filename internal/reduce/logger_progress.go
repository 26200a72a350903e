package reduce

import "github.com/zjy-dev/ir-bugpoint/internal/logger"

// LoggerProgress reports progress through the package logger instead of
// a terminal progress bar, for non-interactive CLI runs (--verbose).
type LoggerProgress struct {
	prefix string
	length int
}

func (p *LoggerProgress) SetPrefix(prefix string) { p.prefix = prefix }
func (p *LoggerProgress) SetLength(length int)    { p.length = length }
func (p *LoggerProgress) SetPosition(position int) {
	logger.Debug("%s: %d/%d", p.prefix, position, p.length)
}
func (p *LoggerProgress) SetMessage(message string) { logger.Debug("%s: %s", p.prefix, message) }
func (p *LoggerProgress) Inc()                      {}
func (p *LoggerProgress) Println(line string)       { logger.Info("%s", line) }
func (p *LoggerProgress) Finish()                   { logger.Info("%s: done", p.prefix) }
