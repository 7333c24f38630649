package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/juju/clock"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/7vars/avrx"
	"github.com/7vars/avrx/player"
	"github.com/7vars/avrx/rx"
)

var rootCmd = &cobra.Command{
	Use:   "avrx-demo",
	Short: "avrx-demo plays a simulated item and logs its reactive streams",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := avrx.Settings()
		avrx.ConfigureLogging(conf)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return run(ctx, conf)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.Duration("interval", player.DefaultInterval, "playhead sampling interval")
	flags.Float64("rate", player.DefaultRate, "playback rate")
	flags.Duration("length", 3*time.Second, "length of the simulated item")
	flags.Duration("timeout", 10*time.Second, "stop after this long even if the item has not ended")
	flags.String("log-level", "INFO", "DEBUG, INFO, WARN or ERROR")
	flags.String("metrics-addr", "", "serve prometheus metrics on this address until interrupted")

	viper.BindPFlag(avrx.KeyPlayheadInterval, flags.Lookup("interval"))
	viper.BindPFlag(avrx.KeyPlayerRate, flags.Lookup("rate"))
	viper.BindPFlag(avrx.KeyLogLevel, flags.Lookup("log-level"))
	viper.BindPFlag("avrx.demo.length", flags.Lookup("length"))
	viper.BindPFlag("avrx.demo.timeout", flags.Lookup("timeout"))
	viper.BindPFlag("avrx.demo.metrics", flags.Lookup("metrics-addr"))
	viper.SetEnvPrefix("AVRX")
	viper.AutomaticEnv()
}

func run(ctx context.Context, conf avrx.Config) error {
	log := avrx.NewLogger().WithField("cmd", "avrx-demo")

	interval, err := player.IntervalFromConfig(conf)
	if err != nil {
		return err
	}
	p := player.NewFromConfig(clock.WallClock, conf, player.WithLogger(log.WithField("component", "player")))
	item := player.NewItem("demo", conf.GetDurationDefault("avrx.demo.length", 3*time.Second))

	var bag rx.Bag
	defer bag.CancelAll()

	progress, err := player.NewPlayheadProgressPublisher(p, interval)
	if err != nil {
		return err
	}
	rx.Sink(progress, func(d time.Duration) {
		log.Infof("playhead %s", d)
	}, nil).Store(&bag)
	rx.Sink(player.RatePublisher(p), func(rate float64) {
		log.Infof("rate %v", rate)
	}, nil).Store(&bag)
	rx.Sink(player.StatusPublisher(item), func(s player.Status) {
		log.Infof("item status %s", s)
	}, nil).Store(&bag)

	ended := make(chan struct{})
	rx.Sink(player.DidPlayToEndTimePublisher(p), func(i *player.Item) {
		log.Infof("%s played to end", i)
		close(ended)
	}, nil).Store(&bag)

	g, ctx := errgroup.WithContext(ctx)
	if addr := conf.GetStringDefault("avrx.demo.metrics", ""); addr != "" {
		srv := &http.Server{
			Addr:    addr,
			Handler: promhttp.HandlerFor(rx.Registry(), promhttp.HandlerOpts{}),
		}
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return srv.Close()
		})
	}

	g.Go(func() error {
		defer bag.CancelAll()
		p.ReplaceCurrentItem(item)
		item.MarkReady()
		if err := p.Play(); err != nil {
			return err
		}

		timeout := conf.GetDurationDefault("avrx.demo.timeout", 10*time.Second)
		select {
		case <-ended:
		case <-ctx.Done():
		case <-time.After(timeout):
			log.Warnf("item did not end within %s", timeout)
		}
		return p.Pause()
	})
	return g.Wait()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
