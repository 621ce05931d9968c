package professor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

// Template variables
const (
	VarQuestion = "question"
	VarAnswer   = "answer"
)

// Template defines the professor persona and the rules for drafting a reply.
// {question} and {answer} are filled per request.
const Template = `
You are UCLA Business school professor who teaches a class about Real Estate Technology. 
You are speaking to a journalist from UCLA's student newsletter.
I will share a question from the journalist. And you will give me the answer that
would best answer that question based on past answers and you will follow ALL of the rules below:

1/ Responses should be similar or even identical to past answers in terms of length, tone of voice, 
logical arguments and other details
2/ If the answers are irrelevant, then try to mimic the style of past answers as well as reflect
relevant and accurate information about real estate technology.  
3/ Keep the answers punchy and professional

Below is a message I received from the prospect:
{question}

Here is a list of best practies of how we normally respond to prospect in similar scenarios:
{answer}

Please write the best response that I should send to this prospect:
`

// NewChatTemplate returns the template as a single user message.
func NewChatTemplate() prompt.ChatTemplate {
	return prompt.FromMessages(schema.FString, schema.UserMessage(Template))
}

// Variables builds the template input for a question and its retrieved past answers.
func Variables(question string, contexts []string) map[string]any {
	return map[string]any{
		VarQuestion: question,
		VarAnswer:   FormatContexts(contexts),
	}
}

// FormatContexts renders the past answers as a bracketed list literal of
// quoted strings, e.g. ['a\nb', "it's"].
func FormatContexts(contexts []string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, c := range contexts {
		if i > 0 {
			sb.WriteString(", ")
		}
		quoteString(&sb, c)
	}
	sb.WriteByte(']')
	return sb.String()
}

// quoteString writes s in single quotes, switching to double quotes when s
// holds a single quote and no double quote. Control and non-printable
// characters are escaped.
func quoteString(sb *strings.Builder, s string) {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	sb.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == ' ' || unicode.IsPrint(r):
			sb.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(sb, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(sb, `\u%04x`, r)
		default:
			fmt.Fprintf(sb, `\U%08x`, r)
		}
	}
	sb.WriteRune(quote)
}
