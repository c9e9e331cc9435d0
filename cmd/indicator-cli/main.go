package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	prompt "github.com/c-bata/go-prompt"
	"github.com/juju/errors"

	"github.com/ivarc/trinkey-indicator/hardware/uart"
	"github.com/ivarc/trinkey-indicator/helpers/cli"
	"github.com/ivarc/trinkey-indicator/internal/alsa"
	"github.com/ivarc/trinkey-indicator/internal/indicator"
	"github.com/ivarc/trinkey-indicator/log2"
)

const usage = `syntax: one command per line
- NN               send raw code NN
- rate R depth D   encode and send, e.g. rate 96000 depth 24
- show NN          print palette colors for code NN, nothing sent
- help             this text
`

var log = log2.NewStderr(log2.LDebug)

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	devicePath := cmdline.String("device", "/dev/ttyACM0", "indicator serial port")
	baud := cmdline.Int("baud", 9600, "")
	cmdline.Parse(os.Args[1:])

	log.SetFlags(log2.LInteractiveFlags)

	port := uart.NewPort()
	if err := port.Open(*devicePath, *baud); err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	defer port.Close()

	cli.MainLoop("indicator-cli", newExecutor(port), completer)
}

func newExecutor(port uart.Porter) func(string) {
	send := func(code int) {
		if _, err := port.Write([]byte(fmt.Sprintf("%d\n", code))); err != nil {
			log.Error(errors.ErrorStack(err))
			return
		}
		log.Infof("sent code=%d", code)
	}

	return func(line string) {
		words := strings.Fields(line)
		if len(words) == 0 {
			return
		}
		switch {
		case words[0] == "help":
			log.Infof(usage)

		case words[0] == "show" && len(words) == 2:
			code, err := strconv.Atoi(words[1])
			if err != nil {
				log.Errorf("show: not a number: %s", words[1])
				return
			}
			bitIndex, rateIndex := indicator.SplitCode(code)
			log.Infof("code=%d pixel0=%s rest=%s",
				code, indicator.BitDepthColor(bitIndex), indicator.SampleRateColor(rateIndex))

		case words[0] == "rate" && len(words) == 4 && words[2] == "depth":
			rate, err1 := strconv.Atoi(words[1])
			depth, err2 := strconv.Atoi(words[3])
			if err1 != nil || err2 != nil {
				log.Errorf("rate/depth: not numbers: %s", line)
				return
			}
			send(alsa.Encode(rate, depth))

		default:
			code, err := strconv.Atoi(words[0])
			if err != nil {
				log.Errorf("unknown command '%s', try help", line)
				return
			}
			send(code)
		}
	}
}

func completer(d prompt.Document) []prompt.Suggest {
	suggests := []prompt.Suggest{
		{Text: "help", Description: "print usage"},
		{Text: "show", Description: "print palette colors for a code"},
		{Text: "rate", Description: "rate R depth D: encode and send"},
		{Text: "0", Description: "blank display"},
	}
	return prompt.FilterHasPrefix(suggests, d.GetWordBeforeCursor(), true)
}
