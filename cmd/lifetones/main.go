// Command lifetones runs the sonified automaton without a window. It can print
// the board, write the soundtrack to a WAV file or play it live.
package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"golang.org/x/term"

	"lifetones/internal/app"
	"lifetones/internal/core"
	"lifetones/internal/log"
	"lifetones/internal/playback"
	"lifetones/pkg/synth"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	steps := flag.Int("steps", 100, "generations to run")
	wavPath := flag.String("wav", "", "write the mixed soundtrack to this WAV file")
	live := flag.Bool("live", false, "play through the audio device in real time")
	printEvery := flag.Int("print", 0, "print the board every N generations (0 disables)")
	flag.Parse()

	logger := log.New(os.Stderr, log.LevelFromString(cfg.LogLevel))
	if cfg.Fill == 0 && cfg.Pattern == "" {
		cfg.Fill = 0.2
	}

	var player playback.Player = playback.NewDiscard()
	if *live {
		p, err := playback.New(cfg.SampleRate)
		if err != nil {
			stdlog.Fatalf("lifetones: %v", err)
		}
		player = p
	}
	sink, _ := player.(*playback.Discard)
	player, recorder := withRecorder(player, *wavPath)

	session, err := app.NewSession(cfg, player, logger)
	if err != nil {
		stdlog.Fatalf("lifetones: %v", err)
	}
	defer session.Close()

	// One generation lasts Speed frames at TPS frames per second.
	pace := core.NewFixedStep(max(cfg.TPS/cfg.Speed, 1))
	tick := pace.Interval()

	var timeline *synth.Timeline
	if recorder != nil {
		timeline = synth.NewTimeline(cfg.SampleRate)
	}

	cols, rows := terminalSize()
	for gen := 0; gen < *steps; gen++ {
		if *live {
			pace.Wait()
		}
		events := session.Tick()
		if timeline != nil {
			mixInto(timeline, recorder, timeline.Frame(time.Duration(gen)*tick))
		}
		if sink != nil {
			sink.Reset()
		}
		logger.Debugf("gen %d: %d notes", session.Generation(), len(events))
		if *printEvery > 0 && gen%*printEvery == 0 {
			if err := app.WriteBoard(os.Stdout, session, cols, rows); err != nil {
				stdlog.Fatalf("lifetones: %v", err)
			}
		}
		if session.Life().Population() == 0 {
			logger.Infof("population died out at generation %d", session.Generation())
			break
		}
	}

	logger.Infof("%d generations, %d notes", session.Generation(), session.NotesPlayed())
	if timeline != nil {
		if err := writeWAV(*wavPath, timeline); err != nil {
			stdlog.Fatalf("lifetones: %v", err)
		}
		mix := timeline.Buffer()
		logger.Infof("wrote %s (%d notes, %s, peak %d, %d clipped samples)",
			*wavPath, timeline.Notes(), mix.Duration().Round(time.Millisecond), mix.Peak(), timeline.Clipped())
	}
	if *live {
		// Let the tails ring out.
		for player.Active() > 0 {
			time.Sleep(50 * time.Millisecond)
		}
	}
}

// withRecorder wraps player in a Recorder when a WAV file is requested, so
// the soundtrack is captured whichever backend plays it.
func withRecorder(player playback.Player, wavPath string) (playback.Player, *playback.Recorder) {
	if wavPath == "" {
		return player, nil
	}
	rec := playback.NewRecorder(player)
	return rec, rec
}

// mixInto moves the buffers recorded during one generation onto tl at frame.
func mixInto(tl *synth.Timeline, rec *playback.Recorder, frame int) {
	for _, buf := range rec.Played() {
		tl.Add(frame, buf)
	}
	rec.Reset()
}

func writeWAV(path string, tl *synth.Timeline) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tl.Buffer().WriteWAV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// terminalSize returns the board area that fits the terminal, or zeros when
// stdout is not a terminal.
func terminalSize() (cols, rows int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal size: %v\n", err)
		return 0, 0
	}
	return w, max(h-2, 1)
}
