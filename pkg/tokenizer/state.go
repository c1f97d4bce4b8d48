package tokenizer

// State is the tokenizer's lexical mode. The set is closed; the merging
// parser's placement logic switches exhaustively over it.
type State int

const (
	BeforeData State = iota
	Data
	TagOpen
	TagName
	EndTagOpen
	EndTagName
	BeforeAttributeName
	AttributeName
	AfterAttributeName
	BeforeAttributeValue
	AttributeValueDoubleQuoted
	AttributeValueSingleQuoted
	AttributeValueUnquoted
	AfterAttributeValueQuoted
	SelfClosingStartTag
	MarkupDeclarationOpen
	CommentStart
	Comment
	CommentEndDash
	CommentEnd
)

var stateNames = map[State]string{
	BeforeData:                 "beforeData",
	Data:                       "data",
	TagOpen:                    "tagOpen",
	TagName:                    "tagName",
	EndTagOpen:                 "endTagOpen",
	EndTagName:                 "endTagName",
	BeforeAttributeName:        "beforeAttributeName",
	AttributeName:              "attributeName",
	AfterAttributeName:         "afterAttributeName",
	BeforeAttributeValue:       "beforeAttributeValue",
	AttributeValueDoubleQuoted: "attributeValueDoubleQuoted",
	AttributeValueSingleQuoted: "attributeValueSingleQuoted",
	AttributeValueUnquoted:     "attributeValueUnquoted",
	AfterAttributeValueQuoted:  "afterAttributeValueQuoted",
	SelfClosingStartTag:        "selfClosingStartTag",
	MarkupDeclarationOpen:      "markupDeclarationOpen",
	CommentStart:               "commentStart",
	Comment:                    "comment",
	CommentEndDash:             "commentEndDash",
	CommentEnd:                 "commentEnd",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// InComment reports whether the tokenizer is anywhere inside <!-- -->.
func (s State) InComment() bool {
	switch s {
	case CommentStart, Comment, CommentEndDash, CommentEnd:
		return true
	}
	return false
}
