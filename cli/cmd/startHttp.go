package cmd

/*
Copyright © 2019 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/francois-poidevin/flightboard/config"
	"github.com/francois-poidevin/flightboard/internal"
	"github.com/francois-poidevin/flightboard/internal/app/cycle"
	"github.com/francois-poidevin/flightboard/internal/app/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02T15:04:05"

type searchParameters struct {
	FromTimeStampParam time.Time `json:"fromTimeStampParam"`
	ToTimeStampParam   time.Time `json:"toTimeStampParam"`
}

type searchResponse struct {
	Parameters searchParameters `json:"parameters"`
	NbRecord   int              `json:"nbRecord"`
	Data       []service.Record `json:"data"`
}

type statusResponse struct {
	Running bool        `json:"running"`
	State   cycle.State `json:"state"`
	Status  []string    `json:"status"`
	Pushed  []string    `json:"pushed"`
	Expires *time.Time  `json:"expires,omitempty"`
}

type messageRequest struct {
	Messages []string `json:"messages"`
	TTL      int      `json:"ttl"`
}

// boardAPI drives one board at a time for the REST endpoints
type boardAPI struct {
	Log      *logrus.Logger
	conf     config.Configuration
	searcher service.Searcher
	newBoard func(ctx context.Context, log *logrus.Logger, conf config.Configuration) (*internal.Board, error)

	mu     sync.Mutex
	board  *internal.Board
	cancel context.CancelFunc
	done   chan struct{}
}

func newBoardAPI(log *logrus.Logger, conf config.Configuration) *boardAPI {
	a := &boardAPI{
		Log:      log,
		conf:     conf,
		newBoard: internal.NewBoard,
	}
	if conf.Flightboard.Displaytype == "DB" {
		a.searcher = service.New(log, conf.Flightboard.DB)
	}
	return a
}

// see https://dev.to/moficodes/build-your-first-rest-api-with-go-2gcj
var startHttpCmd = &cobra.Command{
	Use:   "startHttp",
	Short: "Allow to start REST API service around the board",
	Long:  `The HTTP Rest API service start with config parameters. Several endpoints are available `,
	Run: func(cmd *cobra.Command, args []string) {

		// Initialize config
		initConfig()

		a := newBoardAPI(log, *conf)

		log.WithFields(logrus.Fields{
			"listen": conf.Flightboard.HTTP.Listen,
		}).Info("HTTP API listening")

		//Start http server here
		errServe := http.ListenAndServe(conf.Flightboard.HTTP.Listen, a.router())
		if errClose := a.Close(); errClose != nil {
			log.WithFields(logrus.Fields{
				"Error": errClose,
			}).Warn("Unable to close the search service")
		}
		log.Fatal(errServe)
	},
}

func (a *boardAPI) router() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/start", a.startService).Methods(http.MethodGet)
	api.HandleFunc("/stop", a.stopService).Methods(http.MethodGet)
	api.HandleFunc("/status", a.statusService).Methods(http.MethodGet)
	api.HandleFunc("/message", a.pushMessage).Methods(http.MethodPost)
	api.HandleFunc("/message", a.clearMessage).Methods(http.MethodDelete)
	api.HandleFunc("/search", a.searchService).Methods(http.MethodGet)
	return r
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	w.WriteHeader(code)
	body, _ := json.Marshal(map[string]string{"message": message})
	w.Write(body)
}

//Start the board
func (a *boardAPI) startService(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.board != nil {
		writeMessage(w, http.StatusForbidden, "board already running")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	board, err := a.newBoard(ctx, a.Log, a.conf)
	if err != nil {
		cancel()
		writeMessage(w, http.StatusInternalServerError, fmt.Sprintf("unable to start the board (%s)", err.Error()))
		return
	}

	done := make(chan struct{})
	a.board, a.cancel, a.done = board, cancel, done

	go func() {
		defer close(done)
		if errRun := board.Run(ctx); errRun != nil {
			a.Log.WithContext(ctx).WithFields(logrus.Fields{
				"Error": errRun,
			}).Error("Error in board processing")
		}
		a.mu.Lock()
		if a.board == board {
			a.board, a.cancel, a.done = nil, nil, nil
		}
		a.mu.Unlock()
		cancel()
	}()

	writeMessage(w, http.StatusAccepted, "start board called")
}

//Stop the board
func (a *boardAPI) stopService(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	a.mu.Lock()
	if a.board == nil {
		a.mu.Unlock()
		writeMessage(w, http.StatusForbidden, "board is not running currently")
		return
	}
	cancel, done := a.cancel, a.done
	a.board, a.cancel, a.done = nil, nil, nil
	a.mu.Unlock()

	cancel()
	<-done
	writeMessage(w, http.StatusOK, "stop board called and done")
}

// Close stops the running board and releases the search service
func (a *boardAPI) Close() error {
	a.mu.Lock()
	cancel, done := a.cancel, a.done
	a.board, a.cancel, a.done = nil, nil, nil
	a.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	if closer, ok := a.searcher.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (a *boardAPI) running() *internal.Board {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.board
}

func (a *boardAPI) statusService(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	resp := statusResponse{State: cycle.State{Source: cycle.NoSource}}
	if board := a.running(); board != nil {
		resp.Running = true
		resp.State = board.Controller.Snapshot()
		resp.Status = board.Controller.StatusLines()
		resp.Pushed = board.Pushed.Messages()
		if expires := board.Pushed.Expires(); !expires.IsZero() {
			resp.Expires = &expires
		}
	}

	result, err := json.Marshal(resp)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, fmt.Sprintf("internal server error (%s)", err.Error()))
		return
	}
	w.Write(result)
}

func (a *boardAPI) pushMessage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	board := a.running()
	if board == nil {
		writeMessage(w, http.StatusForbidden, "board is not running currently")
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, fmt.Sprintf("need a JSON body {\"messages\": [...], \"ttl\": seconds} (%s)", err.Error()))
		return
	}
	if err := board.Pushed.Push(req.Messages, time.Duration(req.TTL)*time.Second); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	writeMessage(w, http.StatusAccepted, fmt.Sprintf("%d messages pushed", len(req.Messages)))
}

func (a *boardAPI) clearMessage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	board := a.running()
	if board == nil {
		writeMessage(w, http.StatusForbidden, "board is not running currently")
		return
	}
	board.Pushed.Clear()
	writeMessage(w, http.StatusOK, "pushed messages cleared")
}

//Search on the board history
// params : time windows (from, to)
// return : json
func (a *boardAPI) searchService(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if a.searcher == nil {
		writeMessage(w, http.StatusForbidden, "search needs the DB display, please change config file")
		return
	}

	query := r.URL.Query()

	//Check time windows parameters
	fromTimeStamp, errFromTimeStamp := time.Parse(timeLayout, query.Get("fromTimeStamp"))
	if errFromTimeStamp != nil {
		writeMessage(w, http.StatusBadRequest, fmt.Sprintf("need a time with layout (%s) - error: %s", timeLayout, errFromTimeStamp.Error()))
		return
	}
	toTimeStamp, errToTimeStamp := time.Parse(timeLayout, query.Get("toTimeStamp"))
	if errToTimeStamp != nil {
		writeMessage(w, http.StatusBadRequest, fmt.Sprintf("need a time with layout (%s) - error: %s", timeLayout, errToTimeStamp.Error()))
		return
	}

	data, errSearch := a.searcher.Search(r.Context(), fromTimeStamp, toTimeStamp)
	if errSearch != nil {
		code := http.StatusInternalServerError
		if errors.Is(errSearch, service.ErrInvalidRange) {
			code = http.StatusBadRequest
		}
		writeMessage(w, code, fmt.Sprintf("search error (%s)", errSearch.Error()))
		return
	}

	response := searchResponse{
		Parameters: searchParameters{
			FromTimeStampParam: fromTimeStamp,
			ToTimeStampParam:   toTimeStamp,
		},
		NbRecord: len(data),
		Data:     data,
	}

	result, errJsonMarshal := json.Marshal(response)
	if errJsonMarshal != nil {
		writeMessage(w, http.StatusInternalServerError, fmt.Sprintf("internal server error (%s)", errJsonMarshal.Error()))
		return
	}

	w.Write(result)
}
