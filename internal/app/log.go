package app

import (
	"html"

	"github.com/cihub/seelog"
)

const logFormat = `%LEVEL %Date-%Time] (%File:%Line): %Msg%n`

// InitLog builds a seelog logger. With an empty logFile it writes to the
// console; otherwise to a size-rolled file (10MB, 3 rolls kept).
func InitLog(logFile string) (seelog.LoggerInterface, error) {
	output := `<console />`
	if len(logFile) > 0 {
		output = `<rollingfile type="size" filename="` + html.EscapeString(logFile) +
			`" maxsize="10485760" maxrolls="3" />`
	}
	logConfig := `
		<seelog minlevel="info">
			<outputs formatid="main">
				` + output + `
			</outputs>
			<formats>
				<format id="main" format="` + logFormat + `"/>
			</formats>
		</seelog>`
	return seelog.LoggerFromConfigAsBytes([]byte(logConfig))
}
