package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yananas974/PokemonBattle-sub000/internal/constants"
	"github.com/yananas974/PokemonBattle-sub000/internal/engine"
	"github.com/yananas974/PokemonBattle-sub000/internal/game"
	"github.com/yananas974/PokemonBattle-sub000/internal/service"
	"github.com/yananas974/PokemonBattle-sub000/internal/storage"
	"gorm.io/gorm"
)

type mockRepo struct {
	species []game.Species
	users   []game.User
}

func (m *mockRepo) ListSpecies() ([]game.Species, error) { return m.species, nil }

func (m *mockRepo) GetSpeciesByIDs(ids []uint) ([]game.Species, error) {
	var out []game.Species
	for _, s := range m.species {
		for _, id := range ids {
			if s.ID == id {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (m *mockRepo) MovesFor(uint) ([]game.Move, error) { return nil, nil }
func (m *mockRepo) SaveBattleRecord(*game.BattleRecord) error { return nil }
func (m *mockRepo) UpdateStatsOnBattleEnd(string, game.Winner, bool) error { return nil }
func (m *mockRepo) UpsertUser(string, string) error { return nil }
func (m *mockRepo) GetTopPlayers(limit int) ([]game.User, error) { return m.users, nil }
func (m *mockRepo) GetStatsByEmail(email string) (*game.User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			return &m.users[i], nil
		}
	}
	return &game.User{Email: email}, nil
}

const testPlayer = "ash@example.com"

func newTestServer(t *testing.T) (*gin.Engine, *mockRepo) {
	t.Helper()
	return newTestServerWith(t, service.Options{Rand: engine.NewLockedRand(7)})
}

func newTestServerWith(t *testing.T, opts service.Options) (*gin.Engine, *mockRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv(constants.EnvSessionSecret, "test-secret")

	repo := &mockRepo{
		species: []game.Species{
			{Model: gorm.Model{ID: 1}, Name: "snorlax", Type: "normal", BaseHP: 250, BaseAttack: 5, BaseDefense: 230, BaseSpeed: 30},
			{Model: gorm.Model{ID: 2}, Name: "chansey", Type: "normal", BaseHP: 250, BaseAttack: 5, BaseDefense: 230, BaseSpeed: 50},
		},
		users: []game.User{
			{PlayerName: "Ash", Email: testPlayer, Wins: 3},
			{PlayerName: "Gary", Email: "gary@example.com", Wins: 5},
		},
	}
	reg := service.NewRegistry(opts)
	h := NewBattleHandler(reg, storage.NewRosterProvider(repo), repo, service.NewHub())
	return NewRouter(h, NewAuthHandler(repo)), repo
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if authed {
		tok, err := createSessionToken(testPlayer, "Ash", time.Hour, time.Now())
		if err != nil {
			t.Fatalf("create token: %v", err)
		}
		req.AddCookie(&http.Cookie{Name: constants.CookieSessionName, Value: tok})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) game.BattleState {
	t.Helper()
	var st game.BattleState
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode state: %v (%s)", err, w.Body.String())
	}
	return st
}

func battleBody() CreateBattleRequest {
	return CreateBattleRequest{
		Team1:     []storage.RosterRequest{{SpeciesID: 1, Level: 50}},
		Team2:     []storage.RosterRequest{{SpeciesID: 2, Level: 50}},
		TimeBonus: 1,
	}
}

func TestSessionToken_RoundTrip(t *testing.T) {
	t.Setenv(constants.EnvSessionSecret, "test-secret")
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tok, err := createSessionToken(testPlayer, "Ash", time.Hour, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := parseSessionToken(tok, now.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Sub != testPlayer || claims.Name != "Ash" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if _, err := parseSessionToken(tok, now.Add(2*time.Hour)); err != errTokenExpired {
		t.Fatalf("expected errTokenExpired, got %v", err)
	}
	if _, err := parseSessionToken(tok+"x", now); err != errTokenSignature {
		t.Fatalf("expected errTokenSignature, got %v", err)
	}
	if _, err := parseSessionToken("not-a-token", now); err != errTokenFormat {
		t.Fatalf("expected errTokenFormat, got %v", err)
	}
}

func TestHealthAndVersion(t *testing.T) {
	r, _ := newTestServer(t)
	if w := doJSON(t, r, http.MethodGet, constants.RouteHealth, nil, false); w.Code != http.StatusOK {
		t.Fatalf("health returned %d", w.Code)
	}
	w := doJSON(t, r, http.MethodGet, constants.RouteVersion, nil, false)
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"version"`)) {
		t.Fatalf("version returned %d %s", w.Code, w.Body.String())
	}
}

func TestCreateBattle_RequiresSession(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodPost, "/api/battles", battleBody(), false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestCreateBattleAndSubmitMove(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/battles", battleBody(), true)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	st := decodeState(t, w)
	if st.BattleID == "" || st.PlayerID != testPlayer || !st.WaitingForPlayerMove {
		t.Fatalf("unexpected created state %+v", st)
	}
	if len(st.AvailableMoves) != 1 || st.AvailableMoves[0].Name != engine.Tackle.Name {
		t.Fatalf("expected Tackle fallback, got %+v", st.AvailableMoves)
	}

	w = doJSON(t, r, http.MethodPost, "/api/battles/"+st.BattleID+"/move", gin.H{"move_index": 0}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if after := decodeState(t, w); after.Turn != 2 || len(after.Actions) < 2 {
		t.Fatalf("expected a played turn, got turn %d with %d actions", after.Turn, len(after.Actions))
	}

	w = doJSON(t, r, http.MethodPost, "/api/battles/"+st.BattleID+"/move", gin.H{"move_index": 3}, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad index, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/battles/"+st.BattleID, nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestSubmitMove_MissingIndex(t *testing.T) {
	r, _ := newTestServer(t)
	st := decodeState(t, doJSON(t, r, http.MethodPost, "/api/battles", battleBody(), true))
	w := doJSON(t, r, http.MethodPost, "/api/battles/"+st.BattleID+"/move", gin.H{}, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestForfeit_ThenMoveConflicts(t *testing.T) {
	r, _ := newTestServer(t)
	st := decodeState(t, doJSON(t, r, http.MethodPost, "/api/battles", battleBody(), true))

	w := doJSON(t, r, http.MethodPost, "/api/battles/"+st.BattleID+"/forfeit", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if done := decodeState(t, w); done.Winner != game.WinnerTeam2 || done.Phase != game.PhaseFinished {
		t.Fatalf("forfeit should hand the win to team2, got %+v", done.Winner)
	}
	w = doJSON(t, r, http.MethodPost, "/api/battles/"+st.BattleID+"/move", gin.H{"move_index": 0}, true)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestGetBattle_NotFound(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodGet, "/api/battles/missing", nil, true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHackAnswer_WithoutChallenge(t *testing.T) {
	r, _ := newTestServer(t)
	st := decodeState(t, doJSON(t, r, http.MethodPost, "/api/battles", battleBody(), true))
	w := doJSON(t, r, http.MethodPost, "/api/battles/"+st.BattleID+"/hack", HackAnswerRequest{Answer: "x"}, true)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestHackAnswer_ReportsExpiredKey(t *testing.T) {
	r, _ := newTestServerWith(t, service.Options{Rand: engine.NewLockedRand(7), HackProbability: 1})
	st := decodeState(t, doJSON(t, r, http.MethodPost, "/api/battles", battleBody(), true))

	w := doJSON(t, r, http.MethodPost, "/api/battles/"+st.BattleID+"/move", gin.H{"move_index": 0}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if hacked := decodeState(t, w); !hacked.IsHackActive || hacked.HackChallenge == nil {
		t.Fatalf("expected an active challenge, got %+v", hacked)
	}

	w = doJSON(t, r, http.MethodPost, "/api/battles/"+st.BattleID+"/hack", HackAnswerRequest{Answer: "not-a-pokemon"}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{constants.JSONKeyCorrect, constants.JSONKeyExpired, constants.JSONKeyMessage, constants.JSONKeyState} {
		if _, ok := body[key]; !ok {
			t.Fatalf("response missing %q: %s", key, w.Body.String())
		}
	}
	if string(body[constants.JSONKeyExpired]) != "false" || string(body[constants.JSONKeyCorrect]) != "false" {
		t.Fatalf("expected a wrong, unexpired answer: %s", w.Body.String())
	}
}

func TestCreateBattle_UnknownSpecies(t *testing.T) {
	r, _ := newTestServer(t)
	body := battleBody()
	body.Team2 = []storage.RosterRequest{{SpeciesID: 99}}
	w := doJSON(t, r, http.MethodPost, "/api/battles", body, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSimulateBattle_Anonymous(t *testing.T) {
	r, _ := newTestServer(t)
	body := SimulateBattleRequest{CreateBattleRequest: battleBody(), MaxTurns: 5}
	w := doJSON(t, r, http.MethodPost, "/api/battles/simulate", body, false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	st := decodeState(t, w)
	if st.Phase != game.PhaseFinished || st.Winner == game.WinnerNone {
		t.Fatalf("simulation should finish, got phase %s winner %s", st.Phase, st.Winner)
	}
	if st.Turn > 5 {
		t.Fatalf("simulation ran past max turns: %d", st.Turn)
	}
}

func TestLeaderboard_RedactsOtherEmails(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodGet, "/api/leaderboard", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("@example.com")) {
		t.Fatalf("anonymous leaderboard leaked emails: %s", w.Body.String())
	}
	var rows []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 || rows[0]["player_name"] != "Ash" {
		t.Fatalf("unexpected leaderboard %v", rows)
	}
}

func TestPlayerStats_KeepsOwnEmail(t *testing.T) {
	r, _ := newTestServer(t)
	w := doJSON(t, r, http.MethodGet, "/api/player-stats", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(testPlayer)) {
		t.Fatalf("own email should be visible: %s", w.Body.String())
	}
}
