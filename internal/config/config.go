package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const seedTimeLayout = "2006-01-02 15:04"

type Application struct {
	Host     string   `koanf:"host"`
	Port     int      `koanf:"port"`
	Calendar Calendar `koanf:"calendar"`
}

type Calendar struct {
	WeekStart   string      `koanf:"weekstart"`
	Timezone    string      `koanf:"timezone"`
	InitialView string      `koanf:"initialview"`
	Events      []SeedEvent `koanf:"events"`
}

// SeedEvent is an event loaded into the store at startup. Start and End are
// RFC3339 or "2006-01-02 15:04" in the calendar timezone.
type SeedEvent struct {
	Id          string `koanf:"id"`
	Title       string `koanf:"title"`
	Description string `koanf:"description"`
	Start       string `koanf:"start"`
	End         string `koanf:"end"`
	Color       string `koanf:"color"`
	Category    string `koanf:"category"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Port: 8181,
		Calendar: Calendar{
			WeekStart:   "sunday",
			Timezone:    "Local",
			InitialView: "month",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "CALVIEW_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "CALVIEW_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}

func (c Calendar) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Times parses the start and end of the seed event in loc.
func (s SeedEvent) Times(loc *time.Location) (time.Time, time.Time, error) {
	start, err := parseSeedTime(s.Start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("seed event %q start: %w", s.Title, err)
	}
	end, err := parseSeedTime(s.End, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("seed event %q end: %w", s.Title, err)
	}
	return start, end, nil
}

func parseSeedTime(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(seedTimeLayout, value, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC3339 or %q, got %q", seedTimeLayout, value)
	}
	return t.In(loc), nil
}
