package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	modes1090 "modes1090"
	"modes1090/modes"
)

// track is the subset of a decoded aircraft's state the TUI renders. It is
// updated incrementally by handle from each decoded variant and rendered
// as is on every refresh; only the aircraft count is read from the Decoder.
type track struct {
	addr     modes.QualifiedAddress
	callsign string
	altitude string
	speed    string
	heading  string
	lat      string
	lon      string
	seen     time.Time
}

type tui struct {
	pipeline *modes1090.Pipeline
	tracks   map[modes.QualifiedAddress]*track
}

func newTUI(pipeline *modes1090.Pipeline) *tui {
	return &tui{
		pipeline: pipeline,
		tracks:   make(map[modes.QualifiedAddress]*track),
	}
}

func (t *tui) handle(env modes.Envelope, v modes.Variant, err error) {
	if err != nil || v == nil {
		return
	}
	addr := modes.QualifiedAddress{Address: env.Address, Qualifier: env.Qualifier}
	tr, ok := t.tracks[addr]
	if !ok {
		tr = &track{addr: addr, callsign: "--------", altitude: "-", speed: "-", heading: "-", lat: "-", lon: "-"}
		t.tracks[addr] = tr
	}
	tr.seen = time.Now()

	switch m := v.(type) {
	case modes.IdentificationMsg:
		tr.callsign = m.Callsign
	case modes.AirbornePositionMsg:
		if alt, ok := m.Altitude.Get(); ok {
			tr.altitude = fmt.Sprintf("%d", alt)
		}
		if pos, perr := t.pipeline.Decoder().ExtractPosition(v, nil); perr == nil {
			tr.lat = fmt.Sprintf("%.4f", pos.Lat())
			tr.lon = fmt.Sprintf("%.4f", pos.Lng())
		}
	case modes.SurfacePositionMsg:
		if pos, perr := t.pipeline.Decoder().ExtractPosition(v, nil); perr == nil {
			tr.lat = fmt.Sprintf("%.4f", pos.Lat())
			tr.lon = fmt.Sprintf("%.4f", pos.Lng())
		}
	case modes.VelocityOverGroundMsg:
		if gs, ok := m.GroundSpeedKnots().Get(); ok {
			tr.speed = fmt.Sprintf("%.0f", gs)
		}
		if tk, ok := m.TrackDegrees().Get(); ok {
			tr.heading = fmt.Sprintf("%.0f", tk)
		}
	}
}

func (t *tui) update(g *gocui.Gui) error {
	s, err := g.View("status")
	if err != nil {
		return err
	}
	s.Clear()
	fmt.Fprintf(s, " A/C: %02d  LAST UPDATE: %s\n",
		t.pipeline.Decoder().AircraftCount(),
		time.Now().Format("2006-01-02 15:04:05"))

	l, err := g.View("list")
	if err != nil {
		return err
	}
	l.Clear()

	fmt.Fprintln(l, " ICAO ADDR    FLIGHT     ALT    SPD    HDG     LAT     LON  SEEN")
	fmt.Fprintln(l, " ===================================================================")

	addrs := make([]modes.QualifiedAddress, 0, len(t.tracks))
	for addr := range t.tracks {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i].String() < addrs[j].String() })

	for _, addr := range addrs {
		tr := t.tracks[addr]
		fmt.Fprintf(l, " %s  %9s  %-5s  %-5s  %-3s  %7s  %7s  %s\n",
			addr, tr.callsign, tr.altitude, tr.speed, tr.heading, tr.lat, tr.lon,
			tr.seen.Format("15:04:05"))
	}

	return nil
}

func layout(g *gocui.Gui) error {
	const maxX = 82
	_, maxY := g.Size()

	v, err := g.SetView("status", 0, 0, maxX-2, 2)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Title = " STATUS "
	fmt.Fprintln(v, " A/C: --  LAST UPDATE: 0000-00-00 00:00:00")

	v, err = g.SetView("list", 0, 3, maxX-2, maxY-1)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Title = " A/C "
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

func run(c *cli.Context) error {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if c.Bool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	pipeline := modes1090.NewPipeline(
		modes.WithMaxAircraft(c.Int("max-aircraft")),
		modes.WithMaxAgeMillis(c.Int64("max-age-ms")),
	)
	screen := newTUI(pipeline)

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return fmt.Errorf("gocui: %w", err)
	}
	defer g.Close()

	g.SetManagerFunc(layout)
	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		return err
	}

	stop, err := pipeline.Run(c.String("rtl-adsb"), func(env modes.Envelope, v modes.Variant, derr error) {
		screen.handle(env, v, derr)
		g.Update(screen.update)
	})
	if err != nil {
		return err
	}
	defer stop()

	go func() {
		for range time.Tick(time.Second) {
			pipeline.ClearStale(time.Now().UnixMilli(), c.Int64("max-age-ms"))
			g.Update(screen.update)
		}
	}()

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:  "modes1090",
		Usage: "decode 1090MHz Mode S / ADS-B traffic and show it in a terminal table",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rtl-adsb", Value: "rtl_adsb", Usage: "path to the rtl_adsb executable"},
			&cli.IntFlag{Name: "max-aircraft", Value: modes.DefaultMaxAircraft, Usage: "map-size half of the sweep-triggering threshold"},
			&cli.Int64Flag{Name: "max-age-ms", Value: modes.DefaultMaxAgeMillis, Usage: "age in milliseconds since the latest message before a quiet aircraft is swept"},
			&cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("modes1090 exited")
	}
}
