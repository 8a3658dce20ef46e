package lexer

import (
	"fmt"
	"strconv"
	"strings"
)

// Lexer is the hand-written PHP tokenizer. It drives a small state machine
// (see states.go) so the same scanner can switch between HTML passthrough,
// plain scripting, and the various string-interpolation contexts.
type Lexer struct {
	input        string // full source text
	position     int    // index of the current character
	readPosition int    // index of the next character to read
	ch           byte   // current character
	line         int    // current line number
	column       int    // current column number

	// State machine
	state      LexerState  // current state
	stateStack *StateStack // stack of suspended states (for nested interpolation)

	// Heredoc/Nowdoc support
	heredocLabel  string   // label of the heredoc/nowdoc currently being scanned
	heredocLabels []string // unused label stack, kept for parity with nested-label tracking

	// Error accumulation
	errors []string
}

// GetRemainingInput returns the input from the current position onward.
func (l *Lexer) GetRemainingInput() string {
	if l.position >= len(l.input) {
		return ""
	}
	return l.input[l.position:]
}

// New creates a lexer positioned at the start of input, having already
// skipped a leading shebang line if present.
func New(input string) *Lexer {
	l := &Lexer{
		input:         input,
		line:          1,
		column:        0, // columns are 0-based
		state:         ST_INITIAL,
		stateStack:    NewStateStack(),
		heredocLabels: make([]string, 0),
		errors:        make([]string, 0),
	}

	l.skipShebang()

	l.readChar() // prime the first character
	return l
}

// skipShebang drops a leading "#!" line (e.g. #!/usr/bin/php) from input.
func (l *Lexer) skipShebang() {
	if len(l.input) >= 2 && l.input[0] == '#' && l.input[1] == '!' {
		i := 0
		for i < len(l.input) && l.input[i] != '\n' && l.input[i] != '\r' {
			i++
		}

		// Consume the line ending, handling CRLF, LF, and bare CR.
		if i < len(l.input) {
			if l.input[i] == '\r' {
				i++
				if i < len(l.input) && l.input[i] == '\n' {
					i++
				}
			} else if l.input[i] == '\n' {
				i++
			}
		}

		if i > 0 && i < len(l.input) {
			l.input = l.input[i:]
		} else if i >= len(l.input) {
			// The whole file was a shebang line.
			l.input = ""
		}
	}
}

// readChar advances to the next character, updating line/column bookkeeping.
func (l *Lexer) readChar() {
	l.position = l.readPosition
	l.readPosition++

	if l.position >= len(l.input) {
		l.ch = 0 // EOF
		return
	}

	l.ch = l.input[l.position]

	if l.position == 0 {
		l.line = 1
		l.column = 0
	} else {
		prevChar := l.input[l.position-1]
		if prevChar == '\n' {
			l.line++
			l.column = 0
		} else {
			l.column++
		}
	}
}

// peekChar returns the next character without advancing the cursor.
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// peekCharN returns the character n positions past the cursor (0-based).
func (l *Lexer) peekCharN(n int) byte {
	pos := l.readPosition + n
	if pos >= len(l.input) {
		return 0
	}
	return l.input[pos]
}

// getCurrentPosition captures the token-start position from the
// already-maintained line/column counters, avoiding a re-scan.
func (l *Lexer) getCurrentPosition() Position {
	return Position{
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}
}

// isWhitespace reports whether ch is PHP whitespace.
func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// skipWhitespace advances past any run of whitespace.
func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.ch) {
		l.readChar()
	}
}

// readIdentifier reads a bare identifier starting at the current character.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLabelPart(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readQualifiedName reads a (possibly namespace-qualified) name and reports
// which flavor it is:
//
//	T_NAME_FULLY_QUALIFIED (\Name)
//	T_NAME_QUALIFIED       (Name1\Name2)
//	T_NAME_RELATIVE        (namespace\Name)
//	T_STRING               (Name - a plain identifier)
func (l *Lexer) readQualifiedName() (string, TokenType) {
	startPos := l.position

	if l.ch == '\\' {
		l.readChar() // consume '\'

		if !isLabelStart(l.ch) {
			// A lone backslash not followed by an identifier is its own token;
			// no need to backtrack since we've only consumed the backslash.
			return "\\", T_NS_SEPARATOR
		}

		for isLabelPart(l.ch) {
			l.readChar()
		}

		// Consume any further \Name segments.
		for l.ch == '\\' && isLabelStart(l.peekChar()) {
			l.readChar()
			for isLabelPart(l.ch) {
				l.readChar()
			}
		}

		return l.input[startPos:l.position], T_NAME_FULLY_QUALIFIED
	}

	identifier := l.readIdentifier()

	// "namespace\Name" is a relative name.
	if identifier == "namespace" && l.ch == '\\' && isLabelStart(l.peekChar()) {
		for l.ch == '\\' && isLabelStart(l.peekChar()) {
			l.readChar()
			for isLabelPart(l.ch) {
				l.readChar()
			}
		}
		return l.input[startPos:l.position], T_NAME_RELATIVE
	}

	// "Name1\Name2" is a qualified name.
	if l.ch == '\\' && isLabelStart(l.peekChar()) {
		for l.ch == '\\' && isLabelPart(l.peekChar()) {
			l.readChar()
			for isLabelPart(l.ch) {
				l.readChar()
			}
		}
		return l.input[startPos:l.position], T_NAME_QUALIFIED
	}

	return identifier, T_STRING
}

// readNumber reads an integer or float literal, recognizing the hex, octal
// (both 0777 and 0o777 forms), and binary prefixes, plus underscore digit
// separators.
func (l *Lexer) readNumber() (string, TokenType) {
	position := l.position
	tokenType := T_LNUMBER // default to integer

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar() // '0'
		l.readChar() // 'x'
		for isHexDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		return l.input[position:l.position], T_LNUMBER
	}

	// New-style octal (0o777).
	if l.ch == '0' && (l.peekChar() == 'o' || l.peekChar() == 'O') {
		l.readChar() // '0'
		l.readChar() // 'o'
		for isOctalDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		return l.input[position:l.position], T_LNUMBER
	}

	// Legacy octal (0777).
	if l.ch == '0' && isDigit(l.peekChar()) {
		for isOctalDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		return l.input[position:l.position], T_LNUMBER
	}

	// Binary.
	if l.ch == '0' && (l.peekChar() == 'b' || l.peekChar() == 'B') {
		l.readChar() // '0'
		l.readChar() // 'b'
		for isBinaryDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		return l.input[position:l.position], T_LNUMBER
	}

	// Decimal.
	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}

	// PHP's DNUM grammar is ({LNUM}?"."{LNUM})|({LNUM}"."{LNUM}?) - the
	// digits after the decimal point are optional.
	if l.ch == '.' {
		tokenType = T_DNUMBER
		l.readChar() // '.'
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}

	// Scientific notation.
	if l.ch == 'e' || l.ch == 'E' {
		tokenType = T_DNUMBER
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}

	return l.input[position:l.position], tokenType
}

// convertNumberString parses a literal produced by readNumber into its
// actual integer or float value, stripping digit separators first.
func (l *Lexer) convertNumberString(value string, tokenType TokenType) (TokenType, int64, float64, error) {
	if tokenType == T_DNUMBER {
		cleaned := strings.ReplaceAll(value, "_", "")
		floatVal, err := strconv.ParseFloat(cleaned, 64)
		return T_DNUMBER, 0, floatVal, err
	}

	cleaned := strings.ReplaceAll(value, "_", "")

	var intVal int64
	var err error

	if strings.HasPrefix(cleaned, "0b") || strings.HasPrefix(cleaned, "0B") {
		intVal, err = strconv.ParseInt(cleaned[2:], 2, 64)
	} else if strings.HasPrefix(cleaned, "0x") || strings.HasPrefix(cleaned, "0X") {
		intVal, err = strconv.ParseInt(cleaned[2:], 16, 64)
	} else if strings.HasPrefix(cleaned, "0o") || strings.HasPrefix(cleaned, "0O") {
		intVal, err = strconv.ParseInt(cleaned[2:], 8, 64)
	} else if len(cleaned) > 1 && cleaned[0] == '0' && isOctalDigit(cleaned[1]) {
		intVal, err = strconv.ParseInt(cleaned, 8, 64)
	} else {
		intVal, err = strconv.ParseInt(cleaned, 10, 64)
	}

	// PHP behavior: if integer parsing fails due to overflow, convert to float.
	if err != nil {
		if numError, ok := err.(*strconv.NumError); ok && numError.Err == strconv.ErrRange {
			floatVal, floatErr := strconv.ParseFloat(cleaned, 64)
			if floatErr == nil {
				return T_DNUMBER, 0, floatVal, nil
			}
		}
		return tokenType, intVal, 0, err
	}

	return tokenType, intVal, 0, err
}

// readString reads a simple (non-interpolating) quoted string, decoding its
// escape sequences, up to the matching delimiter.
func (l *Lexer) readString(delimiter byte) (string, error) {
	l.readChar() // move past the opening quote

	var result strings.Builder

	for l.ch != delimiter && l.position < len(l.input) {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				result.WriteByte('\n')
			case 'r':
				result.WriteByte('\r')
			case 't':
				result.WriteByte('\t')
			case '\\':
				result.WriteByte('\\')
			case '\'':
				result.WriteByte('\'')
			case '"':
				result.WriteByte('"')
			case '$':
				result.WriteByte('$')
			default:
				result.WriteByte(l.ch)
			}
		} else {
			result.WriteByte(l.ch)
		}
		l.readChar()
	}

	if l.ch != delimiter {
		return "", fmt.Errorf("unterminated string at line %d, column %d", l.line, l.column)
	}

	l.readChar() // consume the closing quote
	return result.String(), nil
}

// readLineComment reads a "//" or "#" comment up to (but not including) the
// line ending or a closing PHP tag.
func (l *Lexer) readLineComment() string {
	position := l.position
	for l.ch != '\n' && l.ch != '\r' && l.ch != 0 {
		// A "?>" terminates the comment (and the scripting section) here too.
		if l.ch == '?' && l.peekChar() == '>' {
			break
		}
		l.readChar()
	}
	return l.input[position:l.position]
}

// readBlockComment reads a "/* ... */" comment, including both delimiters.
func (l *Lexer) readBlockComment() string {
	position := l.position

	for {
		if l.position >= len(l.input) {
			break
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // '*'
			l.readChar() // '/'
			break
		}
		l.readChar()
	}

	return l.input[position:l.position]
}

// NextToken dispatches to the scanner for the current state.
func (l *Lexer) NextToken() Token {
	switch l.state {
	case ST_INITIAL:
		return l.nextTokenInitial()
	case ST_IN_SCRIPTING:
		return l.nextTokenInScripting()
	case ST_DOUBLE_QUOTES:
		return l.nextTokenInDoubleQuotes()
	case ST_HEREDOC:
		return l.nextTokenInHeredoc()
	case ST_NOWDOC:
		return l.nextTokenInNowdoc()
	case ST_VAR_OFFSET:
		return l.nextTokenInVarOffset()
	case ST_BACKQUOTE:
		return l.nextTokenInBackquote()
	default:
		return l.nextTokenInScripting()
	}
}

// nextTokenInitial scans HTML passthrough content up to the next PHP open tag.
func (l *Lexer) nextTokenInitial() Token {
	var content strings.Builder
	pos := l.getCurrentPosition()

	for l.ch != 0 {
		if l.ch == '<' {
			if l.peekChar() == '?' {
				if l.peekCharN(1) == 'p' && l.peekCharN(2) == 'h' && l.peekCharN(3) == 'p' {
					// Flush any HTML collected before the tag.
					if content.Len() > 0 {
						return Token{Type: T_INLINE_HTML, Value: content.String(), Position: pos}
					}

					result := ""
					for i := 0; i < 5; i++ {
						result += string(l.ch)
						l.readChar()
					}

					// A single whitespace character right after the tag is
					// part of it (PHP swallows it so output doesn't start
					// with a stray newline).
					if l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
						result += string(l.ch)
						l.readChar()
					}

					l.state = ST_IN_SCRIPTING
					return Token{Type: T_OPEN_TAG, Value: result, Position: pos}
				} else if l.peekCharN(1) == '=' {
					// "<?=" short-echo tag.
					if content.Len() > 0 {
						return Token{Type: T_INLINE_HTML, Value: content.String(), Position: pos}
					}

					result := string(l.ch) + string(l.peekChar()) + string(l.peekCharN(1))
					l.readChar() // <
					l.readChar() // ?
					l.readChar() // =

					l.state = ST_IN_SCRIPTING
					return Token{Type: T_OPEN_TAG_WITH_ECHO, Value: result, Position: pos}
				}
			}
		}

		content.WriteByte(l.ch)
		l.readChar()
	}

	if content.Len() > 0 {
		return Token{Type: T_INLINE_HTML, Value: content.String(), Position: pos}
	}

	return Token{Type: T_EOF, Value: "", Position: l.getCurrentPosition()}
}

// nextTokenInScripting scans ordinary PHP code, the bulk of the tokenizer.
func (l *Lexer) nextTokenInScripting() Token {
	l.skipWhitespace()

	pos := l.getCurrentPosition()

	switch l.ch {
	case 0:
		return Token{Type: T_EOF, Value: "", Position: pos}

	// Single-character tokens.
	case ';':
		l.readChar()
		return Token{Type: TOKEN_SEMICOLON, Value: ";", Position: pos}
	case ',':
		l.readChar()
		return Token{Type: TOKEN_COMMA, Value: ",", Position: pos}
	case '{':
		l.readChar()
		return Token{Type: TOKEN_LBRACE, Value: "{", Position: pos}
	case '}':
		l.readChar()
		// A closing brace may return us to a suspended state, e.g. leaving
		// a "{$expr}" interpolation back into a heredoc.
		if !l.stateStack.IsEmpty() {
			l.state = l.stateStack.Pop()
		}
		return Token{Type: TOKEN_RBRACE, Value: "}", Position: pos}
	case '(':
		if tokenType, tokenValue, isCast := l.checkTypeCast(); isCast {
			return Token{Type: tokenType, Value: tokenValue, Position: pos}
		}
		l.readChar()
		return Token{Type: TOKEN_LPAREN, Value: "(", Position: pos}
	case ')':
		l.readChar()
		return Token{Type: TOKEN_RPAREN, Value: ")", Position: pos}
	case '[':
		l.readChar()
		return Token{Type: TOKEN_LBRACKET, Value: "[", Position: pos}
	case ']':
		l.readChar()
		return Token{Type: TOKEN_RBRACKET, Value: "]", Position: pos}
	case '~':
		l.readChar()
		return Token{Type: TOKEN_TILDE, Value: "~", Position: pos}
	case '@':
		l.readChar()
		return Token{Type: TOKEN_AT, Value: "@", Position: pos}

	// Operators that may extend to two or three characters.
	case '+':
		if l.peekChar() == '+' {
			l.readChar()
			l.readChar()
			return Token{Type: T_INC, Value: "++", Position: pos}
		} else if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: T_PLUS_EQUAL, Value: "+=", Position: pos}
		}
		l.readChar()
		return Token{Type: TOKEN_PLUS, Value: "+", Position: pos}

	case '-':
		if l.peekChar() == '-' {
			l.readChar()
			l.readChar()
			return Token{Type: T_DEC, Value: "--", Position: pos}
		} else if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: T_MINUS_EQUAL, Value: "-=", Position: pos}
		} else if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return Token{Type: T_OBJECT_OPERATOR, Value: "->", Position: pos}
		}
		l.readChar()
		return Token{Type: TOKEN_MINUS, Value: "-", Position: pos}

	case '*':
		if l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return Token{Type: T_POW_EQUAL, Value: "**=", Position: pos}
			}
			return Token{Type: T_POW, Value: "**", Position: pos}
		} else if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: T_MUL_EQUAL, Value: "*=", Position: pos}
		}
		l.readChar()
		return Token{Type: TOKEN_MULTIPLY, Value: "*", Position: pos}

	case '/':
		if l.peekChar() == '/' {
			comment := l.readLineComment()
			return Token{Type: T_COMMENT, Value: comment, Position: pos}
		} else if l.peekChar() == '*' {
			// PHP only treats "/**" as a doc comment when followed by
			// whitespace or further content (not immediately by "*/").
			isDocComment := l.peekChar() == '*' && l.peekCharN(1) == '*' &&
				(isWhitespace(l.peekCharN(2)) || (l.peekCharN(2) != '/' && l.peekCharN(2) != 0))
			l.readChar() // '/'
			l.readChar() // '*'
			comment := l.readBlockComment()
			fullComment := "/*" + comment

			if isDocComment {
				return Token{Type: T_DOC_COMMENT, Value: fullComment, Position: pos}
			}
			return Token{Type: T_COMMENT, Value: fullComment, Position: pos}
		} else if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: T_DIV_EQUAL, Value: "/=", Position: pos}
		}
		l.readChar()
		return Token{Type: TOKEN_DIVIDE, Value: "/", Position: pos}

	case '%':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: T_MOD_EQUAL, Value: "%=", Position: pos}
		}
		l.readChar()
		return Token{Type: TOKEN_MODULO, Value: "%", Position: pos}

	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return Token{Type: T_IS_IDENTICAL, Value: "===", Position: pos}
			}
			return Token{Type: T_IS_EQUAL, Value: "==", Position: pos}
		} else if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return Token{Type: T_DOUBLE_ARROW, Value: "=>", Position: pos}
		}
		l.readChar()
		return Token{Type: TOKEN_EQUAL, Value: "=", Position: pos}

	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return Token{Type: T_IS_NOT_IDENTICAL, Value: "!==", Position: pos}
			}
			return Token{Type: T_IS_NOT_EQUAL, Value: "!=", Position: pos}
		}
		l.readChar()
		return Token{Type: TOKEN_EXCLAMATION, Value: "!", Position: pos}

	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			if l.ch == '>' {
				l.readChar()
				return Token{Type: T_SPACESHIP, Value: "<=>", Position: pos}
			}
			return Token{Type: T_IS_SMALLER_OR_EQUAL, Value: "<=", Position: pos}
		} else if l.peekChar() == '>' {
			// "<>" is an alias for "!=".
			l.readChar()
			l.readChar()
			return Token{Type: T_IS_NOT_EQUAL, Value: "<>", Position: pos}
		} else if l.peekChar() == '<' {
			if l.peekCharN(1) == '<' {
				return l.handleHeredocStart(pos)
			}
			l.readChar()
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return Token{Type: T_SL_EQUAL, Value: "<<=", Position: pos}
			}
			return Token{Type: T_SL, Value: "<<", Position: pos}
		}
		l.readChar()
		return Token{Type: TOKEN_LT, Value: "<", Position: pos}

	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: T_IS_GREATER_OR_EQUAL, Value: ">=", Position: pos}
		} else if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return Token{Type: T_SR_EQUAL, Value: ">>=", Position: pos}
			}
			return Token{Type: T_SR, Value: ">>", Position: pos}
		}
		l.readChar()
		return Token{Type: TOKEN_GT, Value: ">", Position: pos}

	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			l.readChar()
			return Token{Type: T_BOOLEAN_AND, Value: "&&", Position: pos}
		} else if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: T_AND_EQUAL, Value: "&=", Position: pos}
		}

		// PHP's grammar distinguishes "&" used for by-reference binding
		// (followed by a $variable or "...") from plain bitwise-and, by
		// looking past whitespace/comments at what comes next.
		if l.isAmpersandFollowedByVarOrVararg() {
			l.readChar()
			return Token{Type: T_AMPERSAND_FOLLOWED_BY_VAR_OR_VARARG, Value: "&", Position: pos}
		} else {
			l.readChar()
			return Token{Type: T_AMPERSAND_NOT_FOLLOWED_BY_VAR_OR_VARARG, Value: "&", Position: pos}
		}

	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			l.readChar()
			return Token{Type: T_BOOLEAN_OR, Value: "||", Position: pos}
		} else if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: T_OR_EQUAL, Value: "|=", Position: pos}
		}
		l.readChar()
		return Token{Type: TOKEN_PIPE, Value: "|", Position: pos}

	case '^':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: T_XOR_EQUAL, Value: "^=", Position: pos}
		}
		l.readChar()
		return Token{Type: TOKEN_CARET, Value: "^", Position: pos}

	case '.':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return Token{Type: T_CONCAT_EQUAL, Value: ".=", Position: pos}
		} else if l.peekChar() == '.' && l.peekCharN(1) == '.' {
			// Ellipsis (...) - the first dot was already consumed by switch.
			l.readChar() // second dot
			l.readChar() // third dot
			l.readChar() // past the third dot
			return Token{Type: T_ELLIPSIS, Value: "...", Position: pos}
		} else if isDigit(l.peekChar()) {
			// A float starting with a bare decimal point, e.g. ".5".
			number, tokenType := l.readNumber()
			finalTokenType, intVal, floatVal, err := l.convertNumberString(number, tokenType)
			if err != nil {
				l.errors = append(l.errors, fmt.Sprintf("failed to convert number %s: %v", number, err))
			}
			return Token{Type: finalTokenType, Value: number, IntValue: intVal, FloatValue: floatVal, Position: pos}
		}
		l.readChar()
		return Token{Type: TOKEN_DOT, Value: ".", Position: pos}

	case '?':
		if l.peekChar() == '?' {
			l.readChar()
			l.readChar()
			if l.ch == '=' {
				l.readChar()
				return Token{Type: T_COALESCE_EQUAL, Value: "??=", Position: pos}
			}
			return Token{Type: T_COALESCE, Value: "??", Position: pos}
		} else if l.peekChar() == '-' && l.peekCharN(1) == '>' {
			l.readChar()
			l.readChar()
			l.readChar()
			return Token{Type: T_NULLSAFE_OBJECT_OPERATOR, Value: "?->", Position: pos}
		} else if l.peekChar() == '>' {
			// PHP closing tag.
			l.readChar()
			l.readChar()
			l.state = ST_INITIAL
			return Token{Type: T_CLOSE_TAG, Value: "?>", Position: pos}
		}
		l.readChar()
		return Token{Type: TOKEN_QUESTION, Value: "?", Position: pos}

	case ':':
		if l.peekChar() == ':' {
			l.readChar()
			l.readChar()
			return Token{Type: T_PAAMAYIM_NEKUDOTAYIM, Value: "::", Position: pos}
		}
		l.readChar()
		return Token{Type: TOKEN_COLON, Value: ":", Position: pos}

	case '$':
		if isLabelStart(l.peekChar()) {
			l.readChar() // '$'
			identifier := l.readIdentifier()
			return Token{Type: T_VARIABLE, Value: "$" + identifier, Position: pos}
		}
		l.readChar()
		return Token{Type: TOKEN_DOLLAR, Value: "$", Position: pos}

	case '\\':
		name, tokenType := l.readQualifiedName()
		return Token{Type: tokenType, Value: name, Position: pos}

	case '"':
		// Only switch into the interpolating state if the string actually
		// contains something to interpolate; otherwise scan it as a whole.
		if l.containsInterpolation('"') {
			l.readChar() // skip the opening quote
			l.state = ST_DOUBLE_QUOTES
			return Token{Type: TOKEN_QUOTE, Value: "\"", Position: pos}
		} else {
			str, err := l.readString('"')
			if err != nil {
				l.addError(err.Error())
				return Token{Type: T_BAD_CHARACTER, Value: "", Position: pos}
			}
			return Token{Type: T_CONSTANT_ENCAPSED_STRING, Value: `"` + str + `"`, Position: pos}
		}

	case '\'':
		str, err := l.readString('\'')
		if err != nil {
			l.addError(err.Error())
			return Token{Type: T_BAD_CHARACTER, Value: "", Position: pos}
		}
		return Token{Type: T_CONSTANT_ENCAPSED_STRING, Value: "'" + str + "'", Position: pos}

	case '`':
		// Shell-exec operator. Either way we hand off to the backquote
		// state, since a plain command still needs its own scanning pass.
		if l.containsInterpolation('`') {
			l.readChar() // skip the opening backtick
			l.state = ST_BACKQUOTE
			return Token{Type: TOKEN_BACKTICK, Value: "`", Position: pos}
		} else {
			l.readChar() // skip the opening backtick
			l.state = ST_BACKQUOTE
			return Token{Type: TOKEN_BACKTICK, Value: "`", Position: pos}
		}

	case '#':
		// Attribute syntax "#[".
		if l.peekChar() == '[' {
			l.readChar() // '['
			l.readChar() // past '[' - the whole "#[" token is consumed
			return Token{Type: T_ATTRIBUTE, Value: "#[", Position: pos}
		}
		comment := l.readLineComment()
		return Token{Type: T_COMMENT, Value: comment, Position: pos}

	default:
		if isLabelStart(l.ch) {
			name, tokenType := l.readQualifiedName()

			// Keyword and compound-keyword checks only apply to plain
			// identifiers, not qualified names.
			if tokenType == T_STRING {
				// Look ahead for the "yield from" compound keyword.
				if name == "yield" {
					savedPos := l.position
					savedReadPos := l.readPosition
					savedCh := l.ch
					savedLine := l.line
					savedColumn := l.column

					l.skipWhitespace()

					if isLabelStart(l.ch) {
						nextIdentifier := l.readIdentifier()
						if nextIdentifier == "from" {
							return Token{Type: T_YIELD_FROM, Value: "yield from", Position: pos}
						}
					}

					// "from" wasn't there - roll back the lookahead.
					l.position = savedPos
					l.readPosition = savedReadPos
					l.ch = savedCh
					l.line = savedLine
					l.column = savedColumn
				}

				// PHP 8.4 asymmetric-visibility property hooks:
				// private(set) / protected(set) / public(set).
				if name == "private" && l.ch == '(' && l.peekChar() == 's' &&
					l.peekCharN(1) == 'e' && l.peekCharN(2) == 't' && l.peekCharN(3) == ')' {
					hookPart := ""
					for i := 0; i < 5; i++ {
						hookPart += string(l.ch)
						l.readChar()
					}
					return Token{Type: T_PRIVATE_SET, Value: name + hookPart, Position: pos}
				}

				if name == "protected" && l.ch == '(' && l.peekChar() == 's' &&
					l.peekCharN(1) == 'e' && l.peekCharN(2) == 't' && l.peekCharN(3) == ')' {
					hookPart := ""
					for i := 0; i < 5; i++ {
						hookPart += string(l.ch)
						l.readChar()
					}
					return Token{Type: T_PROTECTED_SET, Value: name + hookPart, Position: pos}
				}

				if name == "public" && l.ch == '(' && l.peekChar() == 's' &&
					l.peekCharN(1) == 'e' && l.peekCharN(2) == 't' && l.peekCharN(3) == ')' {
					hookPart := ""
					for i := 0; i < 5; i++ {
						hookPart += string(l.ch)
						l.readChar()
					}
					return Token{Type: T_PUBLIC_SET, Value: name + hookPart, Position: pos}
				}

				if keywordType, isKeyword := IsKeyword(name); isKeyword {
					return Token{Type: keywordType, Value: name, Position: pos}
				}
			}

			return Token{Type: tokenType, Value: name, Position: pos}
		} else if isDigit(l.ch) {
			number, tokenType := l.readNumber()
			finalTokenType, intVal, floatVal, err := l.convertNumberString(number, tokenType)
			if err != nil {
				l.errors = append(l.errors, fmt.Sprintf("failed to convert number %s: %v", number, err))
			}
			return Token{Type: finalTokenType, Value: number, IntValue: intVal, FloatValue: floatVal, Position: pos}
		} else {
			ch := l.ch
			l.readChar()
			l.addError(fmt.Sprintf("unexpected character '%c' at line %d, column %d", ch, pos.Line, pos.Column))
			return Token{Type: T_BAD_CHARACTER, Value: string(ch), Position: pos}
		}
	}
}

// nextTokenInDoubleQuotes scans the body of a "..." string that is known to
// contain interpolation, emitting literal runs and variable/expression
// tokens as they're encountered.
func (l *Lexer) nextTokenInDoubleQuotes() Token {
	pos := l.getCurrentPosition()

	if l.ch == '"' {
		l.readChar() // consume closing quote
		l.state = ST_IN_SCRIPTING
		return Token{Type: TOKEN_QUOTE, Value: "\"", Position: pos}
	}

	if l.position >= len(l.input) {
		l.addError("unterminated string")
		return Token{Type: T_EOF, Value: "", Position: pos}
	}

	var content strings.Builder

	for l.ch != '"' && l.ch != 0 {
		// "${expression}" form.
		if l.ch == '$' && l.peekChar() == '{' {
			if content.Len() > 0 {
				return Token{Type: T_ENCAPSED_AND_WHITESPACE, Value: content.String(), Position: pos}
			}
			l.stateStack.Push(l.state)
			l.state = ST_IN_SCRIPTING
			l.readChar() // '$'
			l.readChar() // '{'
			return Token{Type: T_DOLLAR_OPEN_CURLY_BRACES, Value: "${", Position: pos}
		} else if l.ch == '{' && l.peekChar() == '$' {
			// "{$variable}" form.
			if content.Len() > 0 {
				return Token{Type: T_ENCAPSED_AND_WHITESPACE, Value: content.String(), Position: pos}
			}
			l.stateStack.Push(l.state)
			l.state = ST_IN_SCRIPTING
			l.readChar() // '{'
			return Token{Type: T_CURLY_OPEN, Value: "{", Position: pos}
		} else if l.ch == '$' && isLabelStart(l.peekChar()) {
			// Bare "$variable" interpolation.
			if content.Len() > 0 {
				return Token{Type: T_ENCAPSED_AND_WHITESPACE, Value: content.String(), Position: pos}
			}
			l.readChar() // '$'
			identifier := l.readIdentifier()

			// A following "[" means array-offset access.
			if l.ch == '[' {
				l.stateStack.Push(l.state)
				l.state = ST_VAR_OFFSET
			}

			return Token{Type: T_VARIABLE, Value: "$" + identifier, Position: pos}
		}

		if l.ch == '\\' {
			l.readChar()
			if l.ch != 0 {
				switch l.ch {
				case 'n':
					content.WriteByte('\n')
				case 'r':
					content.WriteByte('\r')
				case 't':
					content.WriteByte('\t')
				case '\\':
					content.WriteByte('\\')
				case '"':
					content.WriteByte('"')
				case '$':
					content.WriteByte('$')
				default:
					content.WriteByte(l.ch)
				}
				l.readChar()
			}
		} else {
			content.WriteByte(l.ch)
			l.readChar()
		}
	}

	if content.Len() > 0 {
		return Token{Type: T_ENCAPSED_AND_WHITESPACE, Value: content.String(), Position: pos}
	}

	return Token{Type: T_EOF, Value: "", Position: pos}
}

// nextTokenInBackquote scans the body of a `...` shell-exec string, which
// interpolates the same way double-quoted strings do (minus "${...}").
func (l *Lexer) nextTokenInBackquote() Token {
	pos := l.getCurrentPosition()

	if l.ch == '`' {
		l.readChar() // consume closing backtick
		l.state = ST_IN_SCRIPTING
		return Token{Type: TOKEN_BACKTICK, Value: "`", Position: pos}
	}

	if l.position >= len(l.input) {
		l.addError("unterminated shell execution string")
		return Token{Type: T_EOF, Value: "", Position: pos}
	}

	var content strings.Builder

	for l.ch != '`' && l.ch != 0 {
		if l.ch == '{' && l.peekChar() == '$' {
			if content.Len() > 0 {
				return Token{Type: T_ENCAPSED_AND_WHITESPACE, Value: content.String(), Position: pos}
			}
			l.stateStack.Push(l.state)
			l.state = ST_IN_SCRIPTING
			l.readChar() // '{'
			return Token{Type: T_CURLY_OPEN, Value: "{", Position: pos}
		} else if l.ch == '$' && isLabelStart(l.peekChar()) {
			if content.Len() > 0 {
				return Token{Type: T_ENCAPSED_AND_WHITESPACE, Value: content.String(), Position: pos}
			}
			l.readChar() // '$'
			identifier := l.readIdentifier()
			return Token{Type: T_VARIABLE, Value: "$" + identifier, Position: pos}
		}

		if l.ch == '\\' {
			l.readChar()
			if l.ch != 0 {
				switch l.ch {
				case 'n':
					content.WriteByte('\n')
				case 'r':
					content.WriteByte('\r')
				case 't':
					content.WriteByte('\t')
				case '\\':
					content.WriteByte('\\')
				case '`':
					content.WriteByte('`')
				case '$':
					content.WriteByte('$')
				default:
					content.WriteByte(l.ch)
				}
				l.readChar()
			}
		} else {
			content.WriteByte(l.ch)
			l.readChar()
		}
	}

	if content.Len() > 0 {
		return Token{Type: T_ENCAPSED_AND_WHITESPACE, Value: content.String(), Position: pos}
	}

	return Token{Type: T_EOF, Value: "", Position: pos}
}

// handleHeredocStart scans a "<<<LABEL" or "<<<'LABEL'" opener and switches
// into the corresponding heredoc/nowdoc state.
func (l *Lexer) handleHeredocStart(pos Position) Token {
	l.readChar() // first '<'
	l.readChar() // second '<'
	l.readChar() // third '<'

	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}

	isNowdoc := false
	var label string

	if l.ch == '\'' {
		// Nowdoc: <<<'LABEL'
		isNowdoc = true
		l.readChar() // opening '
		label = l.readHeredocLabel()
		if l.ch == '\'' {
			l.readChar()
		}
	} else if l.ch == '"' {
		// <<<"LABEL" is equivalent to plain <<<LABEL.
		l.readChar()
		label = l.readHeredocLabel()
		if l.ch == '"' {
			l.readChar()
		}
	} else {
		// Plain heredoc: <<<LABEL
		label = l.readHeredocLabel()
	}

	if label == "" {
		l.addError("invalid heredoc/nowdoc label")
		return Token{Type: T_START_HEREDOC, Value: "<<<", Position: pos}
	}

	// Consume to the end of the opener line, keeping the line ending so it
	// can be reflected in the token value.
	var lineEnding string
	for l.ch != '\n' && l.ch != '\r' && l.ch != 0 {
		l.readChar()
	}
	if l.ch == '\r' {
		lineEnding += string(l.ch)
		l.readChar()
	}
	if l.ch == '\n' {
		lineEnding += string(l.ch)
		l.readChar()
	}

	l.heredocLabel = label
	if isNowdoc {
		l.state = ST_NOWDOC
		return Token{Type: T_START_HEREDOC, Value: "<<<'" + label + "'" + lineEnding, Position: pos}
	} else {
		l.state = ST_HEREDOC
		return Token{Type: T_START_HEREDOC, Value: "<<<" + label + lineEnding, Position: pos}
	}
}

// readHeredocLabel reads the bare identifier naming a heredoc/nowdoc label.
func (l *Lexer) readHeredocLabel() string {
	var label strings.Builder

	if !isLabelStart(l.ch) {
		return ""
	}

	for isLabelPart(l.ch) {
		label.WriteByte(l.ch)
		l.readChar()
	}

	return label.String()
}

// nextTokenInHeredoc scans the interpolating body of a heredoc.
func (l *Lexer) nextTokenInHeredoc() Token {
	pos := l.getCurrentPosition()

	if l.isAtHeredocEnd() {
		// Walk back to the start of this line to capture any indentation
		// that's part of the closing-label token (PHP 7.3+ flexible heredoc).
		indentStart := l.position
		for indentStart > 0 && l.input[indentStart-1] != '\n' && l.input[indentStart-1] != '\r' {
			indentStart--
		}

		endTokenValue := l.input[indentStart : l.position+len(l.heredocLabel)]

		for i := 0; i < len(l.heredocLabel); i++ {
			l.readChar()
		}

		l.heredocLabel = ""
		l.state = ST_IN_SCRIPTING
		return Token{Type: T_END_HEREDOC, Value: endTokenValue, Position: pos}
	}

	var content strings.Builder
	for !l.isAtHeredocEnd() && l.ch != 0 {
		if l.ch == '{' && l.peekChar() == '$' {
			// "{$variable}" - emit T_CURLY_OPEN and let the scripting state
			// handle the expression inside.
			if content.Len() > 0 {
				return Token{Type: T_ENCAPSED_AND_WHITESPACE, Value: content.String(), Position: pos}
			}
			l.stateStack.Push(l.state) // remember we're inside a heredoc
			l.state = ST_IN_SCRIPTING
			l.readChar() // '{'
			return Token{Type: T_CURLY_OPEN, Value: "{", Position: pos}
		} else if l.ch == '$' && isLabelStart(l.peekChar()) {
			if content.Len() > 0 {
				return Token{Type: T_ENCAPSED_AND_WHITESPACE, Value: content.String(), Position: pos}
			}
			l.readChar() // '$'
			identifier := l.readIdentifier()
			return Token{Type: T_VARIABLE, Value: "$" + identifier, Position: pos}
		}
		content.WriteByte(l.ch)
		l.readChar()
	}

	if content.Len() > 0 {
		return Token{Type: T_ENCAPSED_AND_WHITESPACE, Value: content.String(), Position: pos}
	}

	return Token{Type: T_EOF, Value: "", Position: pos}
}

// nextTokenInNowdoc scans the non-interpolating body of a nowdoc.
func (l *Lexer) nextTokenInNowdoc() Token {
	pos := l.getCurrentPosition()

	if l.isAtHeredocEnd() {
		indentStart := l.position
		for indentStart > 0 && l.input[indentStart-1] != '\n' && l.input[indentStart-1] != '\r' {
			indentStart--
		}

		endTokenValue := l.input[indentStart : l.position+len(l.heredocLabel)]

		for i := 0; i < len(l.heredocLabel); i++ {
			l.readChar()
		}

		l.heredocLabel = ""
		l.state = ST_IN_SCRIPTING
		return Token{Type: T_END_HEREDOC, Value: endTokenValue, Position: pos}
	}

	// Nowdoc content is taken verbatim - no interpolation checks at all.
	var content strings.Builder
	for !l.isAtHeredocEnd() && l.ch != 0 {
		content.WriteByte(l.ch)
		l.readChar()
	}

	if content.Len() > 0 {
		return Token{Type: T_ENCAPSED_AND_WHITESPACE, Value: content.String(), Position: pos}
	}

	return Token{Type: T_EOF, Value: "", Position: pos}
}

// isAtHeredocEnd reports whether the cursor sits at the heredoc/nowdoc
// closing label: the label text at the start of a line (or after
// pure-indentation whitespace), not itself followed by a label character.
func (l *Lexer) isAtHeredocEnd() bool {
	if l.heredocLabel == "" {
		return false
	}

	if l.column != 0 {
		// Not at column 0 - only a valid closing position if everything
		// back to the start of the line is plain indentation.
		pos := l.position - 1
		for pos >= 0 && l.input[pos] != '\n' && l.input[pos] != '\r' {
			if l.input[pos] != ' ' && l.input[pos] != '\t' {
				return false
			}
			pos--
		}
	}

	labelLen := len(l.heredocLabel)
	if l.position+labelLen > len(l.input) {
		return false
	}

	candidateLabel := l.input[l.position : l.position+labelLen]
	if candidateLabel != l.heredocLabel {
		return false
	}

	// The character right after the label must not continue it - mirrors
	// PHP's own !IS_LABEL_SUCCESSOR() check.
	nextPos := l.position + labelLen
	if nextPos >= len(l.input) {
		return true // end of file
	}

	nextChar := l.input[nextPos]
	isLabelSuccessor := (nextChar >= 'a' && nextChar <= 'z') ||
		(nextChar >= 'A' && nextChar <= 'Z') ||
		(nextChar >= '0' && nextChar <= '9') ||
		nextChar == '_'
	return !isLabelSuccessor
}

// addError records a lexer error message.
func (l *Lexer) addError(msg string) {
	l.errors = append(l.errors, msg)
}

// GetErrors returns every error message recorded so far.
func (l *Lexer) GetErrors() []string {
	return l.errors
}

// State reports the lexer's current state.
func (l *Lexer) State() LexerState {
	return l.state
}

// --- helpers ---

// checkTypeCast looks past an opening "(" for a cast keyword followed by
// ")", e.g. "(int)", restoring the cursor and returning false if what
// follows isn't actually a cast.
func (l *Lexer) checkTypeCast() (TokenType, string, bool) {
	oldPosition := l.position
	oldReadPosition := l.readPosition
	oldCh := l.ch
	oldLine := l.line
	oldColumn := l.column

	l.readChar() // consume '('

	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}

	start := l.position
	if isLabelStart(l.ch) {
		for isLabelPart(l.ch) {
			l.readChar()
		}
	}

	typeName := l.input[start:l.position]

	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}

	if l.ch != ')' {
		l.position = oldPosition
		l.readPosition = oldReadPosition
		l.ch = oldCh
		l.line = oldLine
		l.column = oldColumn
		return 0, "", false
	}

	var tokenType TokenType
	var tokenValue string

	// Compare case-insensitively but keep the original casing in the token
	// value.
	lowerTypeName := strings.ToLower(typeName)

	switch lowerTypeName {
	case "int", "integer":
		tokenType = T_INT_CAST
		tokenValue = "(" + typeName + ")"
	case "bool", "boolean":
		tokenType = T_BOOL_CAST
		tokenValue = "(" + typeName + ")"
	case "float", "double", "real":
		tokenType = T_DOUBLE_CAST
		tokenValue = "(" + typeName + ")"
	case "string":
		tokenType = T_STRING_CAST
		tokenValue = "(" + typeName + ")"
	case "array":
		tokenType = T_ARRAY_CAST
		tokenValue = "(" + typeName + ")"
	case "object":
		tokenType = T_OBJECT_CAST
		tokenValue = "(" + typeName + ")"
	case "unset":
		tokenType = T_UNSET_CAST
		tokenValue = "(" + typeName + ")"
	case "binary":
		tokenType = T_STRING_CAST // PHP treats a binary cast as a string cast
		tokenValue = "(" + typeName + ")"
	default:
		l.position = oldPosition
		l.readPosition = oldReadPosition
		l.ch = oldCh
		l.line = oldLine
		l.column = oldColumn
		return 0, "", false
	}

	l.readChar() // consume ')'

	return tokenType, tokenValue, true
}

func isLabelStart(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch >= 0x80
}

func isLabelPart(ch byte) bool {
	return isLabelStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

func isOctalDigit(ch byte) bool {
	return '0' <= ch && ch <= '7'
}

func isBinaryDigit(ch byte) bool {
	return ch == '0' || ch == '1'
}

// containsInterpolation reports whether a quoted string starting at the
// current position contains a "$var"/"${...}"/"{$...}" construct, so the
// caller can decide between the fast simple-string path and the
// interpolating state machine.
func (l *Lexer) containsInterpolation(delimiter byte) bool {
	pos := l.position + 1 // skip the opening quote

	for pos < len(l.input) && l.input[pos] != delimiter {
		if l.input[pos] == '\\' {
			pos += 2
			continue
		}

		if l.input[pos] == '$' && pos+1 < len(l.input) {
			nextChar := l.input[pos+1]
			if isLabelStart(nextChar) || nextChar == '{' {
				return true
			}
		}

		if l.input[pos] == '{' && pos+1 < len(l.input) && l.input[pos+1] == '$' {
			return true
		}

		pos++
	}

	return false
}

// isAmpersandFollowedByVarOrVararg implements PHP's
// OPTIONAL_WHITESPACE_OR_COMMENTS("$"|"...") lookahead used to classify an
// "&" token as a reference binder vs. plain bitwise-and.
func (l *Lexer) isAmpersandFollowedByVarOrVararg() bool {
	pos := l.readPosition // start right after the '&'

	for pos < len(l.input) {
		ch := l.input[pos]

		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			pos++
			continue
		}

		if ch == '/' && pos+1 < len(l.input) && l.input[pos+1] == '/' {
			for pos < len(l.input) && l.input[pos] != '\n' {
				pos++
			}
			continue
		}

		if ch == '/' && pos+1 < len(l.input) && l.input[pos+1] == '*' {
			pos += 2
			for pos+1 < len(l.input) {
				if l.input[pos] == '*' && l.input[pos+1] == '/' {
					pos += 2
					break
				}
				pos++
			}
			continue
		}

		if ch == '#' {
			for pos < len(l.input) && l.input[pos] != '\n' {
				pos++
			}
			continue
		}

		if ch == '$' {
			return true
		}

		if ch == '.' && pos+2 < len(l.input) &&
			l.input[pos+1] == '.' && l.input[pos+2] == '.' {
			return true
		}

		return false
	}

	return false
}

// nextTokenInVarOffset scans the bracketed array-offset expression of an
// interpolated access like "$arr[index]", which allows a restricted grammar
// (bare variable, bare identifier, or integer - no nested expressions).
func (l *Lexer) nextTokenInVarOffset() Token {
	l.skipWhitespace()
	pos := l.getCurrentPosition()

	switch l.ch {
	case '[':
		l.readChar()
		return Token{Type: TOKEN_LBRACKET, Value: "[", Position: pos}
	case ']':
		l.readChar()
		// Return to the state we were interpolating inside of (double-quoted
		// string or heredoc).
		if !l.stateStack.IsEmpty() {
			l.state = l.stateStack.Pop()
		} else {
			l.state = ST_IN_SCRIPTING
		}
		return Token{Type: TOKEN_RBRACKET, Value: "]", Position: pos}
	case '$':
		if isLabelStart(l.peekChar()) {
			l.readChar() // '$'
			identifier := l.readIdentifier()
			return Token{Type: T_VARIABLE, Value: "$" + identifier, Position: pos}
		}
		// Not a valid variable name - treat like any other character.
		fallthrough
	case 0:
		if !l.stateStack.IsEmpty() {
			l.state = l.stateStack.Pop()
		} else {
			l.state = ST_IN_SCRIPTING
		}
		return Token{Type: T_EOF, Value: "", Position: pos}
	default:
		if isDigit(l.ch) {
			number, tokenType := l.readNumber()
			finalTokenType, intVal, floatVal, err := l.convertNumberString(number, tokenType)
			if err != nil {
				l.errors = append(l.errors, fmt.Sprintf("failed to convert number %s: %v", number, err))
			}
			return Token{Type: finalTokenType, Value: number, IntValue: intVal, FloatValue: floatVal, Position: pos}
		} else if isLabelStart(l.ch) {
			identifier := l.readIdentifier()
			return Token{Type: T_STRING, Value: identifier, Position: pos}
		} else {
			// An invalid character here exits VAR_OFFSET per PHP's rules,
			// surfacing the character itself as plain encapsed content.
			ch := l.ch
			l.readChar()

			if !l.stateStack.IsEmpty() {
				l.state = l.stateStack.Pop()
			} else {
				l.state = ST_IN_SCRIPTING
			}

			return Token{Type: T_ENCAPSED_AND_WHITESPACE, Value: string(ch), Position: pos}
		}
	}
}

// PeekTokensAhead performs n-token lookahead without modifying lexer state.
// Returns the tokens that would be generated starting from the current
// position.
func (l *Lexer) PeekTokensAhead(n int) []Token {
	if n <= 0 {
		return []Token{}
	}

	savedPosition := l.position
	savedReadPosition := l.readPosition
	savedCh := l.ch
	savedLine := l.line
	savedColumn := l.column
	savedState := l.state
	savedHeredocLabel := l.heredocLabel

	savedStateStack := &StateStack{
		states: make([]LexerState, len(l.stateStack.states)),
	}
	copy(savedStateStack.states, l.stateStack.states)

	tokens := make([]Token, 0, n)
	for i := 0; i < n; i++ {
		token := l.NextToken()
		tokens = append(tokens, token)

		if token.Type == T_EOF {
			break
		}
	}

	l.position = savedPosition
	l.readPosition = savedReadPosition
	l.ch = savedCh
	l.line = savedLine
	l.column = savedColumn
	l.state = savedState
	l.heredocLabel = savedHeredocLabel
	l.stateStack = savedStateStack

	return tokens
}
