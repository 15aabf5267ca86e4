package hedges

/*-------------------------------------------------------------
 *
 * Purpose:	Progress reporting for long repair runs.
 *
 *--------------------------------------------------------------*/

import (
	"github.com/charmbracelet/log"
)

// LogMonitor returns a Monitor that reports through the given logger
// once every interval expansions. interval <= 0 reports every
// expansion, which is rarely what you want on a large frontier.
func LogMonitor(logger *log.Logger, interval int) Monitor {
	var count int
	return func(current int, total int, size int, score float64) {
		count++
		if interval > 0 && count%interval != 0 {
			return
		}
		logger.Debug("repairing",
			"consumed", current,
			"of", total,
			"frontier", size,
			"score", score)
	}
}
