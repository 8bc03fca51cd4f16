package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/urfave/cli"
)

//proxyHandler serves static files and forwards /bs/ to the bottom side
func proxyHandler(static string, burl *url.URL) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(static)))
	rp := httputil.NewSingleHostReverseProxy(burl)
	mux.HandleFunc("/bs/", func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = path.Join("/", strings.TrimPrefix(r.URL.Path, "/bs/"))
		r.URL.RawPath = ""
		rp.ServeHTTP(w, r)
	})
	return mux
}

//fetchScreen reads the robot's debug screen
func fetchScreen(client *http.Client, burl *url.URL) (string, error) {
	resp, err := client.Get(burl.JoinPath("screen.txt").String())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func bottomURL(c *cli.Context) (*url.URL, error) {
	raw := c.GlobalString("bottomurl")
	if raw == "" {
		return nil, fmt.Errorf("--bottomurl is required")
	}
	return url.Parse(raw)
}

func main() {
	app := cli.NewApp()
	app.Name = "topside"
	app.Usage = "operator console for the claw bot"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "bottomurl",
			Value: "http://localhost:8080/",
			Usage: "bottom side URL",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "serve the driver page and proxy /bs/ to the bottom side",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "static",
					Value: "./static",
					Usage: "path to static files",
				},
				cli.StringFlag{
					Name:  "http",
					Value: ":8001",
					Usage: "listening address",
				},
			},
			Action: func(c *cli.Context) error {
				burl, err := bottomURL(c)
				if err != nil {
					return err
				}
				log.Printf("Static: %q, bottom side: %s", c.String("static"), burl)
				return http.ListenAndServe(c.String("http"), proxyHandler(c.String("static"), burl))
			},
		},
		{
			Name:  "screen",
			Usage: "print the robot's debug screen as it changes",
			Flags: []cli.Flag{
				cli.DurationFlag{
					Name:  "interval",
					Value: time.Second,
					Usage: "refresh interval",
				},
			},
			Action: func(c *cli.Context) error {
				burl, err := bottomURL(c)
				if err != nil {
					return err
				}
				client := &http.Client{Timeout: 5 * time.Second}
				tick := time.NewTicker(c.Duration("interval"))
				defer tick.Stop()
				var last string
				for range tick.C {
					scr, err := fetchScreen(client, burl)
					if err != nil {
						fmt.Fprintf(os.Stderr, "screen error: %v\n", err)
						continue
					}
					if scr != last {
						fmt.Printf("[%s]\n%s", time.Now().Format(time.Kitchen), scr)
						last = scr
					}
				}
				return nil
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
