package models

import "time"

// MatchEvent is one tick's primary emitted event, per spec §4.3.
type MatchEvent struct {
	Tick          int            `json:"tick" bson:"tick"`
	Type          MatchEventType `json:"type" bson:"type"`
	ActorIDs      []string       `json:"actors" bson:"actors"`
	Yards         *int           `json:"yards,omitempty" bson:"yards,omitempty"`
	Severity      *InjuryStatus  `json:"severity,omitempty" bson:"severity,omitempty"`
	CommentaryRef string         `json:"commentary" bson:"commentary"`
	PossessionTeamID string      `json:"possessionTeamId,omitempty" bson:"possessionTeamId,omitempty"`
	HomeScore     int            `json:"homeScore" bson:"homeScore"`
	AwayScore     int            `json:"awayScore" bson:"awayScore"`
}

// LiveEventEnvelope is the wire record described in spec §6: newline
// delimited, strictly ordered, terminated by a MATCH_COMPLETE record.
type LiveEventEnvelope struct {
	GameID     string         `json:"gameId"`
	Tick       int            `json:"tick"`
	Type       MatchEventType `json:"type"`
	Actors     []string       `json:"actors"`
	Payload    MatchEvent     `json:"payload"`
	Commentary string         `json:"commentary"`
}

// PlayerSnapshot is the in-game state of one fielded or benched player
// inside a LiveMatchState checkpoint.
type PlayerSnapshot struct {
	PlayerID      string `json:"playerId" bson:"playerId"`
	Position      string `json:"position" bson:"position"` // FIELD or BENCH
	CurrentStamina int   `json:"currentStamina" bson:"currentStamina"`
	Modifiers     map[string]float64 `json:"modifiers" bson:"modifiers"`
}

// Checkpoint is the compact, periodically-persisted snapshot of a live
// match's state, written every 15 simulated seconds (spec §4.4) and used
// both for crash recovery and for the checkpoint-restore idempotence law
// (spec §8).
type Checkpoint struct {
	GameID       string                    `db:"game_id" json:"gameId"`
	Tick         int                       `db:"tick" json:"tick"`
	Seed         int64                     `db:"seed" json:"seed"`
	Half         int                       `db:"half" json:"half"`
	PossessionTeamID string                `db:"possession_team_id" json:"possessionTeamId"`
	HomeScore    int                       `db:"home_score" json:"homeScore"`
	AwayScore    int                       `db:"away_score" json:"awayScore"`
	PlayerSnapshots []PlayerSnapshot       `db:"player_snapshots" json:"playerSnapshots"`
	WrittenAt    time.Time                 `db:"written_at" json:"writtenAt"`
}

const CheckpointIntervalTicks = 15

// FinalStats aggregates per-player and per-team statistics produced by a
// completed simulation (spec §3/§4.3).
type PlayerMatchStats struct {
	PlayerID         string `json:"playerId" bson:"playerId"`
	Yards            int    `json:"yards" bson:"yards"`
	PassAttempts     int    `json:"passAttempts" bson:"passAttempts"`
	PassCompletions  int    `json:"passCompletions" bson:"passCompletions"`
	Tackles          int    `json:"tackles" bson:"tackles"`
	Drops            int    `json:"drops" bson:"drops"`
	Knockdowns       int    `json:"knockdowns" bson:"knockdowns"`
	BallSecurityEvents int  `json:"ballSecurityEvents" bson:"ballSecurityEvents"`
	PossessionSeconds int   `json:"possessionSeconds" bson:"possessionSeconds"`
	MinutesPlayed    int    `json:"minutesPlayed" bson:"minutesPlayed"`
}

type TeamMatchStats struct {
	TeamID            string `json:"teamId" bson:"teamId"`
	TotalYards        int    `json:"totalYards" bson:"totalYards"`
	PossessionSeconds int    `json:"possessionSeconds" bson:"possessionSeconds"`
	Turnovers         int    `json:"turnovers" bson:"turnovers"`
}

type FinalStats struct {
	GameID     string                       `json:"gameId" bson:"gameId"`
	HomeScore  int                          `json:"homeScore" bson:"homeScore"`
	AwayScore  int                          `json:"awayScore" bson:"awayScore"`
	PlayerStats map[string]*PlayerMatchStats `json:"playerStats" bson:"playerStats"`
	TeamStats   map[string]*TeamMatchStats   `json:"teamStats" bson:"teamStats"`
}

// MatchEventLogDocument is the Mongo document holding a completed (or
// in-progress) match's full ordered event stream, keyed by gameId.
type MatchEventLogDocument struct {
	GameID string       `bson:"gameId"`
	Seed   int64        `bson:"seed"`
	Events []MatchEvent `bson:"events"`
	Final  *FinalStats  `bson:"final,omitempty"`
}
