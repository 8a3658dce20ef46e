package lexer

// LexerState identifies which sub-grammar the lexer is currently inside.
type LexerState int

// Lexer states, mirroring the state machine PHP's own tokenizer.c drives.
const (
	// ST_INITIAL is outside of any <?php tag, emitting raw HTML.
	ST_INITIAL LexerState = iota

	// ST_IN_SCRIPTING is inside a <?php ... ?> block, the default state
	// for ordinary PHP source.
	ST_IN_SCRIPTING

	// ST_DOUBLE_QUOTES is inside a "..." string, where $var and {$expr}
	// interpolation has to be recognized.
	ST_DOUBLE_QUOTES

	// ST_HEREDOC is inside a <<<LABEL ... LABEL heredoc body.
	ST_HEREDOC

	// ST_NOWDOC is inside a <<<'LABEL' ... LABEL nowdoc body (no
	// interpolation, the label is single-quoted).
	ST_NOWDOC

	// ST_VAR_OFFSET is inside the brackets of an interpolated array
	// access, e.g. the `index` in "$arr[index]".
	ST_VAR_OFFSET

	// ST_LOOKING_FOR_PROPERTY is right after `->` inside an interpolated
	// string, expecting a bare property name.
	ST_LOOKING_FOR_PROPERTY

	// ST_LOOKING_FOR_VARNAME is right after `${` inside an interpolated
	// string, expecting a bare variable name.
	ST_LOOKING_FOR_VARNAME

	// ST_BACKQUOTE is inside a `...` shell-exec string.
	ST_BACKQUOTE

	// ST_COMMENT is inside a // or /* */ comment.
	ST_COMMENT

	// ST_DOC_COMMENT is inside a /** ... */ doc comment.
	ST_DOC_COMMENT
)

// StateNames maps a state to its debug name.
var StateNames = map[LexerState]string{
	ST_INITIAL:              "ST_INITIAL",
	ST_IN_SCRIPTING:         "ST_IN_SCRIPTING",
	ST_DOUBLE_QUOTES:        "ST_DOUBLE_QUOTES",
	ST_HEREDOC:              "ST_HEREDOC",
	ST_NOWDOC:               "ST_NOWDOC",
	ST_VAR_OFFSET:           "ST_VAR_OFFSET",
	ST_LOOKING_FOR_PROPERTY: "ST_LOOKING_FOR_PROPERTY",
	ST_LOOKING_FOR_VARNAME:  "ST_LOOKING_FOR_VARNAME",
	ST_BACKQUOTE:            "ST_BACKQUOTE",
	ST_COMMENT:              "ST_COMMENT",
	ST_DOC_COMMENT:          "ST_DOC_COMMENT",
}

// String renders a state's debug name.
func (s LexerState) String() string {
	if name, exists := StateNames[s]; exists {
		return name
	}
	return "UNKNOWN_STATE"
}

// StateStack tracks nested lexer states - e.g. an interpolated "{$expr}"
// inside a heredoc inside a string needs to unwind back through each layer
// in order.
type StateStack struct {
	states []LexerState
}

// NewStateStack creates an empty state stack with reasonable capacity for
// typical interpolation nesting depth.
func NewStateStack() *StateStack {
	return &StateStack{
		states: make([]LexerState, 0, 8),
	}
}

// Push enters a new nested state.
func (s *StateStack) Push(state LexerState) {
	s.states = append(s.states, state)
}

// Pop leaves the current nested state, falling back to ST_INITIAL if the
// stack is already empty.
func (s *StateStack) Pop() LexerState {
	if len(s.states) == 0 {
		return ST_INITIAL
	}

	last := len(s.states) - 1
	state := s.states[last]
	s.states = s.states[:last]
	return state
}

// Peek reports the current nested state without leaving it.
func (s *StateStack) Peek() LexerState {
	if len(s.states) == 0 {
		return ST_INITIAL
	}
	return s.states[len(s.states)-1]
}

// IsEmpty reports whether no state is nested.
func (s *StateStack) IsEmpty() bool {
	return len(s.states) == 0
}

// Size reports the current nesting depth.
func (s *StateStack) Size() int {
	return len(s.states)
}

// Clear drops all nested states.
func (s *StateStack) Clear() {
	s.states = s.states[:0]
}
