// Command client plays a level from the command line: each argument of -moves is a
// direction (right, down, left, up or r, d, l, u).
package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/muncher/client"
	"github.com/zucenko/muncher/model"
)

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	level := flag.String("level", "", "level name, server default when empty")
	moves := flag.String("moves", "", "comma separated directions")
	flag.Parse()

	directions, err := parseMoves(*moves)
	if err != nil {
		log.Fatalln(err)
	}
	url := "ws://" + *addr + "/play"
	if *level != "" {
		url += "/" + *level
	}
	if err := run(url, directions); err != nil {
		log.Fatalln(err)
	}
}

func parseMoves(moves string) ([]model.Direction, error) {
	directions := make([]model.Direction, 0)
	for _, s := range strings.Split(moves, ",") {
		if strings.TrimSpace(s) == "" {
			continue
		}
		d, err := model.ParseDirection(s)
		if err != nil {
			return nil, err
		}
		directions = append(directions, d)
	}
	return directions, nil
}

// run always closes the connection so the server sees a normal end of session.
func run(url string, directions []model.Direction) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := client.Dial(ctx, url)
	if err != nil {
		return fmt.Errorf("cant join %s: %w", url, err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Warnf("close: %v", err)
		}
	}()

	fmt.Print(c.String())
	for _, d := range directions {
		result, err := c.Move(d)
		if err != nil {
			return fmt.Errorf("move %s: %w", d.Name(), err)
		}
		log.WithFields(log.Fields{
			"direction": d.Name(),
			"x":         result.X,
			"y":         result.Y,
		}).Infof("success:%v", result.Success)
	}
	fmt.Print(c.String())
	return nil
}
