package composer

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
	"gopkg.in/yaml.v3"
)

//go:embed template/responses.yaml
var responsesYAML []byte

// Templates is the parsed response template catalogue.
//
// Every template is a Go template. The variables below are always present
// (possibly empty) so a template may reference any of them:
//
//	Topic, Utterance, Tone, Earlier, LastTopic, Name, Category, Count, Insight
type Templates struct {
	Greeting struct {
		Openers      []string `yaml:"openers"`
		Callback     string   `yaml:"callback"`
		Capabilities string   `yaml:"capabilities"`
	} `yaml:"greeting"`

	Question struct {
		Openers     map[string]string `yaml:"openers"`
		Elaboration string            `yaml:"elaboration"`
		Callback    string            `yaml:"callback"`
	} `yaml:"question"`

	Request struct {
		Plans    map[string]string `yaml:"plans"`
		Closings map[string]string `yaml:"closings"`
	} `yaml:"request"`

	Analysis struct {
		Framework string `yaml:"framework"`
		Findings  string `yaml:"findings"`
		Insights  string `yaml:"insights"`
	} `yaml:"analysis"`

	Opinion struct {
		Appreciation string `yaml:"appreciation"`
		FirstPerson  string `yaml:"first_person"`
		Reflection   string `yaml:"reflection"`
	} `yaml:"opinion"`

	Conversation struct {
		Openers    []string `yaml:"openers"`
		Engagement string   `yaml:"engagement"`
		Callback   string   `yaml:"callback"`
		Closing    string   `yaml:"closing"`
	} `yaml:"conversation"`

	Attachments struct {
		Single struct {
			Opening  string            `yaml:"opening"`
			Answers  map[string]string `yaml:"answers"`
			Insights map[string]string `yaml:"insights"`
		} `yaml:"single"`
		Multiple struct {
			Opening        string              `yaml:"opening"`
			Line           string              `yaml:"line"`
			Summaries      map[string]string   `yaml:"summaries"`
			NextStepsTitle string              `yaml:"next_steps_title"`
			NextSteps      map[string][]string `yaml:"next_steps"`
		} `yaml:"multiple"`
		ReportsTitle string `yaml:"reports_title"`
	} `yaml:"attachments"`
}

// LoadTemplates parses a YAML template catalogue.
func LoadTemplates(data []byte) (*Templates, error) {
	var t Templates
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse response templates: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// DefaultTemplates parses the embedded catalogue.
func DefaultTemplates() (*Templates, error) {
	return LoadTemplates(responsesYAML)
}

func (t *Templates) validate() error {
	switch {
	case len(t.Greeting.Openers) == 0:
		return fmt.Errorf("response templates: no greeting openers")
	case len(t.Conversation.Openers) == 0:
		return fmt.Errorf("response templates: no conversation openers")
	case t.Question.Openers[familyOther] == "":
		return fmt.Errorf("response templates: missing question opener %q", familyOther)
	case t.Request.Plans[defaultAction] == "":
		return fmt.Errorf("response templates: missing request plan %q", defaultAction)
	}
	return nil
}

// render formats tpl through the Eino prompt component so prompt callbacks
// observe every rendered template.
func render(ctx context.Context, tpl string, vars map[string]any) (string, error) {
	if tpl == "" {
		return "", nil
	}
	msgs, err := prompt.FromMessages(schema.GoTemplate, schema.AssistantMessage(tpl, nil)).Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("render template: empty result")
	}
	return msgs[0].Content, nil
}
