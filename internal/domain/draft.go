package domain

type ActionType string

const (
	ActionTypeBan  ActionType = "ban"
	ActionTypePick ActionType = "pick"
)

// Phase represents a single step in the draft
type Phase struct {
	Index      int
	Team       Side
	ActionType ActionType
}

// ProPlayPhases defines the 20-phase pro play draft order
var ProPlayPhases = []Phase{
	// Ban Phase 1 (6 bans)
	{0, SideBlue, ActionTypeBan},
	{1, SideRed, ActionTypeBan},
	{2, SideBlue, ActionTypeBan},
	{3, SideRed, ActionTypeBan},
	{4, SideBlue, ActionTypeBan},
	{5, SideRed, ActionTypeBan},
	// Pick Phase 1 (6 picks: B, RR, BB, R)
	{6, SideBlue, ActionTypePick},
	{7, SideRed, ActionTypePick},
	{8, SideRed, ActionTypePick},
	{9, SideBlue, ActionTypePick},
	{10, SideBlue, ActionTypePick},
	{11, SideRed, ActionTypePick},
	// Ban Phase 2 (4 bans: R, B, R, B)
	{12, SideRed, ActionTypeBan},
	{13, SideBlue, ActionTypeBan},
	{14, SideRed, ActionTypeBan},
	{15, SideBlue, ActionTypeBan},
	// Pick Phase 2 (4 picks: R, BB, R)
	{16, SideRed, ActionTypePick},
	{17, SideBlue, ActionTypePick},
	{18, SideBlue, ActionTypePick},
	{19, SideRed, ActionTypePick},
}

// GetPhase returns the phase configuration for a given phase index
func GetPhase(index int) *Phase {
	if index < 0 || index >= len(ProPlayPhases) {
		return nil
	}
	return &ProPlayPhases[index]
}

// TotalPhases returns the total number of phases in a pro play draft
func TotalPhases() int {
	return len(ProPlayPhases)
}

// DraftPhase is one of the five named stages a draft passes through, derived
// purely from how many actions have been taken.
type DraftPhase string

const (
	DraftPhaseBan1     DraftPhase = "BAN_PHASE_1"
	DraftPhasePick1    DraftPhase = "PICK_PHASE_1"
	DraftPhaseBan2     DraftPhase = "BAN_PHASE_2"
	DraftPhasePick2    DraftPhase = "PICK_PHASE_2"
	DraftPhaseComplete DraftPhase = "COMPLETE"
)

// ComputePhase derives the draft phase from the count of actions taken so far.
func ComputePhase(n int) DraftPhase {
	switch {
	case n <= 5:
		return DraftPhaseBan1
	case n <= 11:
		return DraftPhasePick1
	case n <= 15:
		return DraftPhaseBan2
	case n <= 19:
		return DraftPhasePick2
	default:
		return DraftPhaseComplete
	}
}

// ActionRecord is the core engine's immutable draft-action shape: sequence,
// action type, team side and champion name, with no persistence concerns.
type ActionRecord struct {
	Sequence   int
	ActionType ActionType
	TeamSide   Side
	Champion   string
}

// StateView is the immutable, derived view of a draft at some action-count
// prefix: the four champion lists, the phase, and the next actor — the
// latter always read off the actual action sequence rather than assumed
// from a fixed order, since real tournament drafts vary.
type StateView struct {
	BluePicks  []string
	RedPicks   []string
	BlueBans   []string
	RedBans    []string
	Phase      DraftPhase
	ActionCount int
	NextTeam   *Side
	NextAction *ActionType
}

// BuildStateView derives a StateView from the first upToIndex actions of an
// ordered action list, peeking at allActions[upToIndex] for the next actor
// when one exists. This fits replay sessions, where the full action
// sequence is already known and upToIndex is a cursor into it; it does not
// fit simulator sessions, which only ever hold actions already taken — use
// BuildSimulatorStateView there instead.
func BuildStateView(allActions []ActionRecord, upToIndex int) StateView {
	if upToIndex > len(allActions) {
		upToIndex = len(allActions)
	}
	view := StateView{ActionCount: upToIndex, Phase: ComputePhase(upToIndex)}
	for _, action := range allActions[:upToIndex] {
		switch {
		case action.ActionType == ActionTypePick && action.TeamSide == SideBlue:
			view.BluePicks = append(view.BluePicks, action.Champion)
		case action.ActionType == ActionTypePick && action.TeamSide == SideRed:
			view.RedPicks = append(view.RedPicks, action.Champion)
		case action.ActionType == ActionTypeBan && action.TeamSide == SideBlue:
			view.BlueBans = append(view.BlueBans, action.Champion)
		case action.ActionType == ActionTypeBan && action.TeamSide == SideRed:
			view.RedBans = append(view.RedBans, action.Champion)
		}
	}
	if upToIndex < len(allActions) {
		next := allActions[upToIndex]
		team := next.TeamSide
		actionType := next.ActionType
		view.NextTeam = &team
		view.NextAction = &actionType
	}
	return view
}

// BuildSimulatorStateView derives a StateView for a simulator session from
// the actions taken so far, with the next actor read off the fixed
// standard-order phase table (ProPlayPhases/GetPhase) rather than peeked
// from the action list itself — a simulator has no pre-known next action to
// peek at. NextTeam/NextAction are nil once the phase table is exhausted.
func BuildSimulatorStateView(actions []ActionRecord) StateView {
	view := BuildStateView(actions, len(actions))
	if phase := GetPhase(len(actions)); phase != nil {
		team := phase.Team
		actionType := phase.ActionType
		view.NextTeam = &team
		view.NextAction = &actionType
	}
	return view
}
