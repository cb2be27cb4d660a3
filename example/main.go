// This example program decodes ADS-B messages from the console
// until Ctrl+C is pressed.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	modes1090 "modes1090"
	"modes1090/modes"
)

func printVariant(env modes.Envelope, v modes.Variant, err error) {
	if err != nil {
		log.Debug().Err(err).Msg("frame rejected")
		return
	}
	// print ads-b message (Downlink Format 17 or 18)
	if env.DF == 17 || env.DF == 18 {
		fmt.Printf("DF%-2d %-28s ICAO24=%02X%02X%02X %s\n",
			env.DF, v.Kind(), env.Address[0], env.Address[1], env.Address[2], env.Qualifier)
	}
}

func main() {
	sigs := make(chan os.Signal, 1)
	done := make(chan bool, 1)

	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		fmt.Println()
		fmt.Println(sig)
		done <- true
	}()

	pipeline := modes1090.NewPipeline()
	stopFunc, e := pipeline.Run(
		"C:\\rtl-sdr-release\\x64\\rtl_adsb.exe", // path to rtl_adsb.exe (included in RTL-SDR package.)
		printVariant)

	if e != nil {
		fmt.Println("error: ", e)
		return
	}

	fmt.Println("awaiting signal")
	<-done
	stopFunc()
	fmt.Println("exiting")
}
