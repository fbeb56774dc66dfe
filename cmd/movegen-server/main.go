// Command movegen-server exposes the move generator over HTTP: legal
// move queries and perft runs as JSON, plus a WebSocket endpoint that
// streams per-move perft breakdowns.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/oakmage/chesscore/internal/board"
)

const defaultPort = 8080

// maxDepth bounds the depth of both synchronous perft requests and the
// streaming divide endpoint.
const maxDepth = 7

type application struct {
	router   *mux.Router
	upgrader websocket.Upgrader
}

func newApplication() *application {
	app := &application{
		router: mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	app.router.Use(func(next http.Handler) http.Handler {
		return handlers.LoggingHandler(os.Stdout, next)
	})

	app.router.HandleFunc("/api/moves", app.movesHandler).Methods(http.MethodGet)
	app.router.HandleFunc("/api/perft", app.perftHandler).Methods(http.MethodGet)
	app.router.HandleFunc("/ws/divide", app.divideHandler)

	return app
}

type moveInfo struct {
	UCI string `json:"uci"`
	SAN string `json:"san"`
}

type movesResponse struct {
	FEN        string     `json:"fen"`
	SideToMove string     `json:"side_to_move"`
	InCheck    bool       `json:"in_check"`
	Moves      []moveInfo `json:"moves"`
}

func (app *application) movesHandler(w http.ResponseWriter, r *http.Request) {
	pos, ok := parsePosition(w, r)
	if !ok {
		return
	}

	legal := pos.GenerateLegalMoves()
	moves := make([]moveInfo, 0, legal.Len())
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		moves = append(moves, moveInfo{UCI: m.String(), SAN: m.ToSAN(pos)})
	}

	writeJSON(w, movesResponse{
		FEN:        pos.ToFEN(),
		SideToMove: pos.SideToMove.String(),
		InCheck:    pos.InCheck(),
		Moves:      moves,
	})
}

type perftResponse struct {
	FEN     string `json:"fen"`
	Depth   int    `json:"depth"`
	Nodes   int64  `json:"nodes"`
	Elapsed string `json:"elapsed"`
}

func (app *application) perftHandler(w http.ResponseWriter, r *http.Request) {
	pos, ok := parsePosition(w, r)
	if !ok {
		return
	}

	depth, err := strconv.Atoi(r.URL.Query().Get("depth"))
	if err != nil || depth < 1 || depth > maxDepth {
		http.Error(w, fmt.Sprintf("depth must be between 1 and %d", maxDepth), http.StatusBadRequest)
		return
	}

	start := time.Now()
	nodes := board.Perft(pos, depth)

	writeJSON(w, perftResponse{
		FEN:     pos.ToFEN(),
		Depth:   depth,
		Nodes:   nodes,
		Elapsed: time.Since(start).String(),
	})
}

type divideRequest struct {
	FEN   string `json:"fen"`
	Depth int    `json:"depth"`
}

type divideMessage struct {
	Move  string `json:"move,omitempty"`
	Nodes int64  `json:"nodes"`
	Done  bool   `json:"done"`
}

// divideHandler streams one message per root move, then a final total.
func (app *application) divideHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := app.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	var req divideRequest
	if err := conn.ReadJSON(&req); err != nil {
		log.Printf("websocket read: %v", err)
		return
	}

	pos, err := board.ParseFEN(req.FEN)
	if err != nil {
		conn.WriteJSON(map[string]string{"error": err.Error()})
		return
	}
	if req.Depth < 1 || req.Depth > maxDepth {
		conn.WriteJSON(map[string]string{"error": fmt.Sprintf("depth must be between 1 and %d", maxDepth)})
		return
	}

	var legal board.MoveList
	pos.Generate(board.GenLegal, &legal)

	var total int64
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		undo := pos.MakeMove(m)
		nodes := board.Perft(pos, req.Depth-1)
		pos.UnmakeMove(m, undo)

		total += nodes
		if err := conn.WriteJSON(divideMessage{Move: m.String(), Nodes: nodes}); err != nil {
			log.Printf("websocket write: %v", err)
			return
		}
	}

	conn.WriteJSON(divideMessage{Nodes: total, Done: true})
}

func parsePosition(w http.ResponseWriter, r *http.Request) (*board.Position, bool) {
	fen := r.URL.Query().Get("fen")
	if fen == "" {
		fen = board.StartFEN
	}

	pos, err := board.ParseFEN(fen)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if err := pos.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	return pos, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func main() {
	port := flag.Int("port", defaultPort, "listen port")
	flag.Parse()

	app := newApplication()

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("movegen-server listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, app.router))
}
