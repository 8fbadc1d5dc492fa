package prompts

import "github.com/futig/architech-backend/internal/entity"

const (
	fileInterview = "interview.yaml"
	fileIdea      = "idea.yaml"
	fileGuide     = "guide.yaml"
	fileEditor    = "editor.yaml"
)

// maxContextBlocks bounds how much of the document is sent with an
// editor chat request; larger documents send only the selection.
const maxContextBlocks = 10

type startData struct {
	Interest string
}

// StartInterview asks for the opening question.
func StartInterview(interest string) (string, error) {
	return Render(fileInterview, "start", startData{Interest: interest})
}

type assessData struct {
	Interest     string
	Conversation entity.Conversation
	TurnCount    int
}

// AssessInterview asks for a QualityAssessment of the conversation.
func AssessInterview(interest string, conversation entity.Conversation, turnCount int) (string, error) {
	return Render(fileInterview, "assess", assessData{
		Interest:     interest,
		Conversation: conversation,
		TurnCount:    turnCount,
	})
}

type nextQuestionData struct {
	Interest     string
	Conversation entity.Conversation
	Weakest      string
	Previous     []string
}

// NextQuestion asks for one new question aimed at the weakest dimension.
func NextQuestion(interest string, conversation entity.Conversation, weakest string) (string, error) {
	return Render(fileInterview, "next_question", nextQuestionData{
		Interest:     interest,
		Conversation: conversation,
		Weakest:      weakest,
		Previous:     conversation.Questions(),
	})
}

type ideaListData struct {
	Interest     string
	Conversation entity.Conversation
}

// IdeaList asks for three project ideas.
func IdeaList(interest string, conversation entity.Conversation) (string, error) {
	return Render(fileIdea, "generate_list", ideaListData{Interest: interest, Conversation: conversation})
}

// Blueprint asks for the projectData and workbenchContent of a chosen idea.
func Blueprint(in entity.GenerateBlueprintInput) (string, error) {
	return Render(fileIdea, "blueprint", in)
}

type projectContextData struct {
	ProjectContext string
}

// DatabaseSchema asks for a relational schema of the project.
func DatabaseSchema(projectContext string) (string, error) {
	return Render(fileIdea, "database_schema", projectContextData{ProjectContext: projectContext})
}

// Flowchart asks for a Mermaid architecture chart of the project.
func Flowchart(projectContext string) (string, error) {
	return Render(fileIdea, "flowchart", projectContextData{ProjectContext: projectContext})
}

type guideData struct {
	WorkbenchContent string
}

// Guide asks for the categorized implementation guide of a blueprint.
func Guide(workbenchContent string) (string, error) {
	return Render(fileGuide, "generate", guideData{WorkbenchContent: workbenchContent})
}

type editorChatData struct {
	Selected []entity.DocumentBlock
	Context  []entity.DocumentBlock
	HasTools bool
}

// EditorChatSystem builds the system prompt of the editor chat from the
// document states attached to the messages.
func EditorChatSystem(messages []entity.EditorMessage, hasTools bool) (string, error) {
	data := editorChatData{HasTools: hasTools}
	for _, msg := range messages {
		if msg.DocumentState == nil {
			continue
		}
		data.Selected = append(data.Selected, msg.DocumentState.SelectedBlocks...)
		if n := len(msg.DocumentState.Blocks); n > 0 && n <= maxContextBlocks {
			data.Context = append(data.Context, msg.DocumentState.Blocks...)
		}
	}
	return Render(fileEditor, "chat_system", data)
}

// EditorCompletionSystem is the co-writer system prompt.
func EditorCompletionSystem() (string, error) {
	return Render(fileEditor, "completion_system", nil)
}

type completionUserData struct {
	Context string
	Prompt  string
}

// EditorCompletionUser combines the optional instruction with the text
// being continued.
func EditorCompletionUser(context string, prompt *string) (string, error) {
	data := completionUserData{Context: context}
	if prompt != nil {
		data.Prompt = *prompt
	}
	return Render(fileEditor, "completion_user", data)
}
