// Command wordclock drives a word-clock LED face: it spells the current time
// in English phrases, keeps the time on a DS3231 RTC, and lets two push
// buttons adjust it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/host/v3"

	"github.com/PumpMagic/WordClock/internal/display"
	"github.com/PumpMagic/WordClock/internal/gpio"
	"github.com/PumpMagic/WordClock/internal/logic"
	"github.com/PumpMagic/WordClock/internal/mqtt"
	"github.com/PumpMagic/WordClock/internal/rtc"
	"github.com/PumpMagic/WordClock/internal/status"
	"github.com/PumpMagic/WordClock/internal/web"
	"github.com/PumpMagic/WordClock/internal/words"
)

func main() {
	tick := flag.Duration("tick", time.Millisecond, "Core loop interval")
	debounce := flag.Duration("debounce", 50*time.Millisecond, "Button debounce duration")
	repeat := flag.Duration("repeat", time.Second, "Auto-repeat period while a button is held")
	poll := flag.Duration("rtc-poll", 5*time.Second, "RTC poll interval")
	inaction := flag.Duration("inaction", 5*time.Second, "Quiet period after an edit before the RTC write-back")
	i2cBus := flag.String("i2c", "", "I2C bus the RTC is on (empty for the first available)")
	pinHour := flag.Int("pin-hour", gpio.DefaultPinHour, "BCM pin number for the hour button")
	pinMinute := flag.Int("pin-minute", gpio.DefaultPinMinute, "BCM pin number for the minute button")
	pinData := flag.Int("pin-data", display.DefaultPinData, "BCM pin number for shift-register data")
	pinClock := flag.Int("pin-clock", display.DefaultPinClock, "BCM pin number for shift-register clock")
	pinLatch := flag.Int("pin-latch", display.DefaultPinLatch, "BCM pin number for shift-register latch")
	pinOE := flag.Int("pin-oe", display.DefaultPinOE, "BCM pin number for shift-register output enable")
	brightness := flag.Float64("brightness", 1.0, "Display brightness, 0.0 to 1.0")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")
	selfTest := flag.Bool("selftest", true, "Walk every word on the face at startup")
	printTime := flag.Bool("print-time", false, "Print the RTC time and its spelled words, then exit")

	flag.Parse()

	cfg := logic.Config{
		Debounce:      logic.Millis((*debounce).Milliseconds()),
		Repeat:        logic.Millis((*repeat).Milliseconds()),
		Poll:          logic.Millis((*poll).Milliseconds()),
		InactionDelay: logic.Millis((*inaction).Milliseconds()),
	}

	if err := run(cfg, *tick, *i2cBus, *pinHour, *pinMinute, *pinData, *pinClock, *pinLatch, *pinOE,
		*brightness, *broker, *heartbeat, *httpAddr, *selfTest, *printTime); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg logic.Config, tick time.Duration, i2cBus string, pinHour, pinMinute, pinData, pinClock, pinLatch, pinOE int,
	brightness float64, broker string, heartbeat time.Duration, httpAddr string, selfTest, printTime bool) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("init periph host: %w", err)
	}

	// Initialize the RTC
	dev, err := rtc.NewDS3231(i2cBus)
	if err != nil {
		return fmt.Errorf("init rtc: %w", err)
	}
	defer dev.Close()

	// Print mode
	if printTime {
		t, err := dev.ReadTime()
		if err != nil {
			return fmt.Errorf("read rtc: %w", err)
		}
		fmt.Printf("%s (%s)\n", t, wordsFor(t))
		return nil
	}

	// Initialize the buttons
	buttons, err := gpio.NewRealReader(pinHour, pinMinute)
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer buttons.Close()

	// Initialize the display
	disp, err := display.NewRealDriver(pinData, pinClock, pinLatch, pinOE)
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	defer disp.Close()
	if err := disp.SetBrightness(brightness); err != nil {
		return fmt.Errorf("set brightness: %w", err)
	}
	if selfTest {
		if err := display.SelfTest(disp, 50*time.Millisecond); err != nil {
			return fmt.Errorf("display self-test: %w", err)
		}
	}

	// Initialize MQTT
	publisher, err := mqtt.NewRealPublisher(broker)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		TickMs:      tick.Milliseconds(),
		DebounceMs:  int64(cfg.Debounce),
		RepeatMs:    int64(cfg.Repeat),
		PollMs:      int64(cfg.Poll),
		InactionMs:  int64(cfg.InactionDelay),
		HeartbeatMs: heartbeat.Milliseconds(),
		Broker:      broker,
		HTTPAddr:    httpAddr,
		I2CBus:      i2cBus,
		Brightness:  brightness,
	})

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if httpAddr != "" {
		srv := web.New(httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", httpAddr)
	}

	log.Printf("started: tick=%v debounce=%dms repeat=%dms rtc-poll=%dms inaction=%dms broker=%s",
		tick, cfg.Debounce, cfg.Repeat, cfg.Poll, cfg.InactionDelay, broker)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(buttons, dev, disp, publisher, publisher, tracker, cfg, heartbeat, time.Now, ticker.C, sigCh)
}

func runLoop(buttons gpio.Reader, dev rtc.Device, disp display.Driver, publisher mqtt.Publisher,
	mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, cfg logic.Config,
	heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	start := now()

	engine, err := logic.NewEngine(dev, cfg, 0)
	if err != nil {
		return fmt.Errorf("init clock engine: %w", err)
	}

	// First render happens before any input is sampled.
	if err := disp.Render(engine.Words()); err != nil {
		log.Printf("render error: %v", err)
	}
	log.Printf("showing %s (%s)", engine.Current(), engine.Words())
	if tracker != nil {
		tracker.Update(engine.Current(), engine.Words(), engine.PendingWrite(), engine.Counts())
	}

	lastHeartbeat := start

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()
			hour, minute, err := buttons.Read()
			if err != nil {
				log.Printf("button read error: %v", err)
				continue
			}

			res, err := engine.Tick(logic.Input{
				Now:           logic.Millis(t.Sub(start).Milliseconds()),
				HourPressed:   hour,
				MinutePressed: minute,
			})
			if err != nil {
				// RTC hiccup: keep showing the last known time.
				log.Printf("rtc error: %v", err)
			}

			if res.Render {
				if err := disp.Render(res.Words); err != nil {
					log.Printf("render error: %v", err)
				}
			}

			for _, event := range res.Events {
				log.Printf("event: %s (%s, %s)", event.Type, event.Time, res.Words)
				if err := publisher.Publish(t, event); err != nil {
					log.Printf("publish error: %v", err)
					// Don't crash on publish failure
				}
			}

			// Check for heartbeat
			if heartbeat > 0 && t.Sub(lastHeartbeat) >= heartbeat {
				lastHeartbeat = t
				counts := engine.Counts()
				log.Printf("heartbeat: uptime=%v hour_edits=%d minute_edits=%d rtc_reads=%d rtc_writes=%d rtc_errors=%d",
					t.Sub(start).Truncate(time.Second), counts.HourAdvances, counts.MinuteAdvances,
					counts.RTCReads, counts.RTCWrites, counts.RTCErrors)

				hbEvent := mqtt.SystemEvent{
					Timestamp: t,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					tracker.Update(engine.Current(), engine.Words(), engine.PendingWrite(), counts)
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				tracker.Update(engine.Current(), engine.Words(), engine.PendingWrite(), engine.Counts())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}
		}
	}
}

func wordsFor(t rtc.Time) string {
	return words.Encode(t.Hour, t.Minute).String()
}
