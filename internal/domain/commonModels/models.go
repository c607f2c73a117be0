package commonModels

type DocType string

var PDF DocType = "PDF"
var DOCX DocType = "DOCX"
var TXT DocType = "TXT"
var ERR DocType = "ERROR"

type Page struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

// Document is the extracted text of one uploaded file.
type Document struct {
	Name        string  `json:"doc_name"`
	Path        string  `json:"path"`
	ContentType DocType `json:"contentType"`
	Pages       []Page  `json:"pages,omitempty"`
	Text        string  `json:"text"`
}

// DocChunk is a contiguous slice of Document.Text. Start is a rune offset.
type DocChunk struct {
	ChunkId string `json:"chunk_id"`
	Order   int    `json:"chunk_order"`
	Start   int    `json:"start"`
	Content string `json:"content"`
}

// Question is the shape the model is asked to produce. The json names are the
// wire contract shared by the prompt example and the response parser.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

type Answer struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type UIQuestion struct {
	Question string   `json:"question"`
	Answers  []Answer `json:"answers"`
}

type DBQuestion struct {
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Marks         int      `json:"marks"`
}

const (
	DiagDuplicateOption   = "duplicate_option"
	DiagMissingLabel      = "missing_option_label"
	DiagUnknownAnswer     = "unknown_answer_letter"
	DiagUnresolvedAnswer  = "unresolved_correct_answer"
	DiagAmbiguousAnswer   = "ambiguous_multi_answer"
	DiagTruncatedResponse = "extra_questions_dropped"
)

// Diagnostic is a non fatal finding about a generated question.
type Diagnostic struct {
	QuestionIndex int    `json:"question_index"`
	Code          string `json:"code"`
	Message       string `json:"message"`
}

type QuizRequest struct {
	Document     Document
	Topic        string
	NumQuestions int
}

type QuizResult struct {
	Questions   []Question   `json:"questions"`
	Sources     []string     `json:"sources,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}
