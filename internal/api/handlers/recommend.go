package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/draftsvc"
	"github.com/wutims/draftengine/internal/llm"
	"github.com/wutims/draftengine/internal/recerr"
	"github.com/wutims/draftengine/internal/recommend"
	"github.com/wutims/draftengine/internal/repository"
	"github.com/wutims/draftengine/internal/session"
)

// RecommendHandler exposes the recommendation engine's simulator and
// replay sessions over HTTP: create a session, submit or trigger
// actions, and read back recommendations for whichever side is next
// to act.
type RecommendHandler struct {
	engine     *draftsvc.Engine
	quality    *draftsvc.QualityAnalyzer
	replays    *session.ReplayManager
	simulators *session.SimulatorManager
	reranker   *llm.Reranker
	matchData  repository.MatchDataStore
}

func NewRecommendHandler(engine *draftsvc.Engine, quality *draftsvc.QualityAnalyzer, replays *session.ReplayManager, simulators *session.SimulatorManager, reranker *llm.Reranker, matchData repository.MatchDataStore) *RecommendHandler {
	return &RecommendHandler{engine: engine, quality: quality, replays: replays, simulators: simulators, reranker: reranker, matchData: matchData}
}

type rosterPlayerRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type createSimulatorRequest struct {
	BlueTeamID   string                `json:"blueTeamId"`
	RedTeamID    string                `json:"redTeamId"`
	CoachingSide string                `json:"coachingSide"`
	SeriesLength int                   `json:"seriesLength"`
	FearlessMode bool                  `json:"fearlessMode"`
	BluePlayers  []rosterPlayerRequest `json:"bluePlayers"`
	RedPlayers   []rosterPlayerRequest `json:"redPlayers"`
}

type simulatorResponse struct {
	ID    string            `json:"id"`
	State stateViewResponse `json:"state"`
}

type stateViewResponse struct {
	BluePicks  []string `json:"bluePicks"`
	RedPicks   []string `json:"redPicks"`
	BlueBans   []string `json:"blueBans"`
	RedBans    []string `json:"redBans"`
	Phase      string   `json:"phase"`
	NextTeam   string   `json:"nextTeam,omitempty"`
	NextAction string   `json:"nextAction,omitempty"`
}

func toStateResponse(state domain.StateView) stateViewResponse {
	resp := stateViewResponse{
		BluePicks: state.BluePicks,
		RedPicks:  state.RedPicks,
		BlueBans:  state.BlueBans,
		RedBans:   state.RedBans,
		Phase:     string(state.Phase),
	}
	if state.NextTeam != nil {
		resp.NextTeam = string(*state.NextTeam)
	}
	if state.NextAction != nil {
		resp.NextAction = string(*state.NextAction)
	}
	return resp
}

// CreateSimulator starts a new AI-opponent draft session for the
// requested coaching side.
func (h *RecommendHandler) CreateSimulator(w http.ResponseWriter, r *http.Request) {
	var req createSimulatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	blue := toRosterPlayers(req.BluePlayers)
	red := toRosterPlayers(req.RedPlayers)

	sess := session.NewSimulatorSession(
		uuid.NewString(),
		req.BlueTeamID, req.RedTeamID,
		domain.Side(req.CoachingSide),
		seriesLengthFrom(req.SeriesLength),
		draftModeFrom(req.FearlessMode),
		blue, red,
		h.engine,
		h.enemyStrategyFor(r.Context(), domain.Side(req.CoachingSide), req.BlueTeamID, req.RedTeamID),
	)
	h.simulators.Create(sess)

	writeJSON(w, simulatorResponse{ID: sess.ID, State: toStateResponse(sess.State())})
}

type submitActionRequest struct {
	Champion string `json:"champion"`
}

// SubmitSimulatorAction applies the coaching side's pick or ban.
func (h *RecommendHandler) SubmitSimulatorAction(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.simulators.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	var req submitActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := sess.SubmitAction(req.Champion); err != nil {
		log.Printf("ERROR [recommend.SubmitSimulatorAction]: %v", err)
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, toStateResponse(sess.State()))
}

// TriggerEnemyAction asks the AI opponent to take its next action.
func (h *RecommendHandler) TriggerEnemyAction(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.simulators.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	champion, err := sess.TriggerEnemyAction()
	if err != nil {
		log.Printf("ERROR [recommend.TriggerEnemyAction]: %v", err)
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, map[string]any{"champion": champion, "state": toStateResponse(sess.State())})
}

type rerankRequest struct {
	ActionCount int `json:"actionCount"`
}

// RerankSimulatorPicks runs the session's current pick or ban
// recommendations through the LLM reranker, falling back to the
// algorithm's own order when the model is unavailable. The caller must
// present the action_count its last known state was built from; a
// mismatch means the coach's view is stale and is rejected before any
// engine or LLM work happens.
func (h *RecommendHandler) RerankSimulatorPicks(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.simulators.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	var req rerankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	state := sess.State()
	if req.ActionCount != state.ActionCount {
		err := recerr.Stale("requested action_count %d is stale; current is %d", req.ActionCount, state.ActionCount)
		log.Printf("ERROR [recommend.RerankSimulatorPicks]: %v", err)
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	recs := h.engine.GetRecommendations(state, sess.CoachingSide, nil, "", nil, 10)
	ourPicks, enemyPicks := state.BluePicks, state.RedPicks
	if sess.CoachingSide == domain.SideRed {
		ourPicks, enemyPicks = state.RedPicks, state.BluePicks
	}
	draftCtx := llm.DraftContext{
		Phase:      state.Phase,
		OurPicks:   ourPicks,
		EnemyPicks: enemyPicks,
		Banned:     append(append([]string{}, state.BlueBans...), state.RedBans...),
	}

	var result llm.RerankerResult
	if len(recs.Picks) > 0 {
		result = h.reranker.RerankPicks(r.Context(), "", pickCandidates(recs.Picks), draftCtx, nil, nil, 10, nil)
	} else {
		result = h.reranker.RerankBans(r.Context(), banCandidates(recs.Bans), draftCtx, nil, nil, 10, nil)
	}
	writeJSON(w, result)
}

func pickCandidates(picks []recommend.PickRecommendation) []llm.Candidate {
	out := make([]llm.Candidate, 0, len(picks))
	for _, p := range picks {
		out = append(out, llm.Candidate{
			Champion: p.Champion,
			Role:     p.SuggestedRole,
			Score:    p.TotalScore,
			Reasons:  p.Reasons,
		})
	}
	return out
}

func banCandidates(bans []recommend.BanRecommendation) []llm.Candidate {
	out := make([]llm.Candidate, 0, len(bans))
	for _, b := range bans {
		out = append(out, llm.Candidate{Champion: b.Champion, Score: b.Priority, Priority: b.Priority, TargetPlayer: b.TargetPlayer, Reasons: b.Reasons})
	}
	return out
}

// GetSimulatorState returns the session's current draft state.
func (h *RecommendHandler) GetSimulatorState(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.simulators.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, toStateResponse(sess.State()))
}

type qualityRequest struct {
	Picks []string `json:"picks"`
}

// AnalyzeQuality grades a finished (or in-progress) five-champion
// composition.
func (h *RecommendHandler) AnalyzeQuality(w http.ResponseWriter, r *http.Request) {
	var req qualityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	writeJSON(w, h.quality.AnalyzeQuality(req.Picks))
}

// ReplayStep advances a replay session by one action and returns what
// changed plus the recommendations already queued for the next one.
func (h *RecommendHandler) ReplayStep(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.replays.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	step, err := sess.Next()
	if err != nil {
		log.Printf("ERROR [recommend.ReplayStep]: %v", err)
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, map[string]any{
		"champion": step.Action.Champion,
		"state":    toStateResponse(step.State),
	})
}

// ReplayPlay resumes automatic playback; pacing is enforced by the
// caller polling ReplayStep at sess.Delay() intervals.
func (h *RecommendHandler) ReplayPlay(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.replays.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	sess.Play()
	writeJSON(w, map[string]string{"status": string(sess.Status())})
}

// ReplayPause halts automatic playback.
func (h *RecommendHandler) ReplayPause(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.replays.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	sess.Pause()
	writeJSON(w, map[string]string{"status": string(sess.Status())})
}

// enemyStrategyFor builds the AI opponent's strategy for whichever team
// the coach is not controlling. Match history is preferred when the
// team id resolves to recorded games; a whole-knowledge-store uniform
// pool is the fallback for teams with no recorded history yet.
func (h *RecommendHandler) enemyStrategyFor(ctx context.Context, coachingSide domain.Side, blueTeamID, redTeamID string) session.EnemyStrategy {
	enemyTeamID := redTeamID
	if coachingSide == domain.SideRed {
		enemyTeamID = blueTeamID
	}
	if h.matchData != nil {
		if id, err := uuid.Parse(enemyTeamID); err == nil {
			if strategy, ok := session.NewMatchHistoryStrategy(ctx, h.matchData, id); ok {
				return strategy
			}
		}
	}
	return session.NewUniformStrategy(map[string][]string{enemyTeamID: h.engine.AllChampions()})
}

func toRosterPlayers(in []rosterPlayerRequest) []recommend.RosterPlayer {
	out := make([]recommend.RosterPlayer, 0, len(in))
	for _, p := range in {
		out = append(out, recommend.RosterPlayer{Name: p.Name, Role: domain.Role(p.Role)})
	}
	return out
}

func seriesLengthFrom(n int) session.SeriesLength {
	switch n {
	case 3:
		return session.SeriesBo3
	case 5:
		return session.SeriesBo5
	default:
		return session.SeriesBo1
	}
}

func draftModeFrom(fearless bool) session.DraftMode {
	if fearless {
		return session.DraftModeFearless
	}
	return session.DraftModeNormal
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR [recommend.writeJSON]: %v", err)
	}
}
