package protocol

// InboundMessage is a command from the presentation layer to the GameEngine
type InboundMessage struct {
	Command Cmd `json:"command"`
	TokenID int `json:"tokenID,omitempty"`
	Level   int `json:"level,omitempty"`
}

// RevealMsg builds a Reveal command
func RevealMsg(tokenID int) InboundMessage {
	return InboundMessage{Command: Reveal, TokenID: tokenID}
}

// SelectLevelMsg builds a SelectLevel command
func SelectLevelMsg(index int) InboundMessage {
	return InboundMessage{Command: SelectLevel, Level: index}
}

// OutboundMessage is a read-only snapshot sent after every accepted transition
type OutboundMessage struct {
	GameID     string   `json:"gameID"`
	Name       string   `json:"name"`
	Command    Cmd      `json:"command"`
	SessionID  string   `json:"sessionID"`
	LevelIndex int      `json:"levelIndex"`
	LevelName  string   `json:"levelName"`
	LevelCount int      `json:"levelCount"`
	LevelNames []string `json:"levelNames"`
	Columns    int      `json:"columns"`
	Rows       int      `json:"rows"`
	Stage      string   `json:"stage"`
	Tokens     []Token  `json:"tokens"`
	Selection  []int    `json:"selection"`
	Moves      int      `json:"moves"`
	Completed  bool     `json:"completed"`
	Resolving  bool     `json:"resolving"`
	Won        bool     `json:"won"`
	BestScores []*int   `json:"bestScores"`
}

// Token is a token as the presentation layer sees it.
// PairKey and Asset are only filled in while the token is face up.
type Token struct {
	ID       int    `json:"id"`
	PairKey  string `json:"pairKey,omitempty"`
	Asset    string `json:"asset,omitempty"`
	Revealed bool   `json:"revealed"`
	Matched  bool   `json:"matched"`
}

// BestScore returns the best score for a level, if one was recorded
func (m OutboundMessage) BestScore(index int) (int, bool) {
	if index < 0 || index >= len(m.BestScores) || m.BestScores[index] == nil {
		return 0, false
	}
	return *m.BestScores[index], true
}
