package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/AscendTech4H/iqclaw/screen"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func (r *robot) handler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	//handle controls
	mux.HandleFunc("/control", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Add("Cache-Control", "no-cache")
		if err := r.seat.take(req.RemoteAddr); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		defer r.seat.release()
		ws, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			log.Printf("Error upgrading websocket: %q", err.Error())
			return
		}
		defer ws.Close()
		log.Printf("Controller connected from %s", req.RemoteAddr)
		for {
			var f ControllerFrame
			if err := ws.ReadJSON(&f); err != nil {
				log.Printf("Error reading from control socket: %q", err.Error())
				return
			}
			r.ctl.set(f, time.Now())
		}
	})
	//info about state
	mux.HandleFunc("/info.json", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		info, _ := r.snapshot()
		json.NewEncoder(w).Encode(info)
	})
	mux.HandleFunc("/screen.txt", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, lines := r.snapshot()
		io.WriteString(w, screen.Text(lines))
	})
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}
