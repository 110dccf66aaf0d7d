package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/aliverse/internal/bazi"
	"github.com/ziadkadry99/aliverse/internal/calendar"
	"github.com/ziadkadry99/aliverse/internal/garage"
	"github.com/ziadkadry99/aliverse/internal/readings"
	"github.com/ziadkadry99/aliverse/internal/report"
	"github.com/ziadkadry99/aliverse/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wizardRequest is the incoming WebSocket message format.
type wizardRequest struct {
	Type  string              `json:"type"` // "analyze", "unlock" or "divine"
	Input calendar.BirthInput `json:"input"`
	Code  string              `json:"code,omitempty"`
	Fuel  *bazi.Element       `json:"fuel,omitempty"`
}

// wizardResponse is the outgoing WebSocket message format.
type wizardResponse struct {
	Type    string           `json:"type"` // "analyzed", "unlocked", "divined" or "error"
	State   session.State    `json:"state"`
	Reading *readings.Detail `json:"reading,omitempty"`
	Share   string           `json:"share,omitempty"`
	Matrix  *garage.Hexagram `json:"matrix,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// handleWebSocket runs one wizard per connection. The state lives only as
// long as the socket.
func (d *Dashboard) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	var state session.State
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				d.logger.Warn("websocket read", zap.Error(err))
			}
			return
		}

		var req wizardRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			d.send(conn, wizardResponse{Type: "error", State: state, Error: "invalid message format"})
			continue
		}

		var resp wizardResponse
		switch req.Type {
		case "analyze":
			state, resp = d.analyze(r, state, req)
		case "unlock":
			state, resp = d.unlock(state, req)
		case "divine":
			state, resp = d.divine(r, state, req)
		default:
			resp = wizardResponse{Type: "error", State: state, Error: "unknown message type: " + req.Type}
		}
		d.send(conn, resp)
	}
}

func (d *Dashboard) analyze(r *http.Request, state session.State, req wizardRequest) (session.State, wizardResponse) {
	detail, err := d.readings.Create(r.Context(), req.Input, nil, false)
	if err != nil {
		return state, errorResponse(state, err)
	}
	next, err := state.Analyze(detail.Reading.ID)
	if err != nil {
		return state, errorResponse(state, err)
	}
	d.logger.Debug("reading analyzed",
		zap.String("id", detail.Reading.ID),
		zap.Stringer("bucket", detail.Reading.Bucket),
	)
	return next, wizardResponse{
		Type:    "analyzed",
		State:   next,
		Reading: detail,
		Share:   report.Share(detail.Result, d.brand),
	}
}

func (d *Dashboard) unlock(state session.State, req wizardRequest) (session.State, wizardResponse) {
	next, err := state.Unlock(d.gate, req.Code)
	if err != nil {
		return state, errorResponse(state, err)
	}
	return next, wizardResponse{Type: "unlocked", State: next}
}

func (d *Dashboard) divine(r *http.Request, state session.State, req wizardRequest) (session.State, wizardResponse) {
	next, err := state.Divine()
	if err != nil {
		return state, errorResponse(state, err)
	}
	h, err := d.readings.Divine(r.Context(), state.ReadingID, req.Fuel)
	if err != nil {
		return state, errorResponse(state, err)
	}
	return next, wizardResponse{Type: "divined", State: next, Matrix: &h}
}

func errorResponse(state session.State, err error) wizardResponse {
	return wizardResponse{Type: "error", State: state, Error: err.Error()}
}

func (d *Dashboard) send(conn *websocket.Conn, resp wizardResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		d.logger.Warn("websocket write", zap.Error(err))
	}
}
