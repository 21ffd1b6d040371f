package notify

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const (
	SignUpSubject = "New User Sign-Up Notification"
	TestSubject   = "Test Email"
)

var (
	//go:embed templates/signup.txt
	signUpTemplateRaw string
	//go:embed templates/test.txt
	testTemplateRaw string

	signUpTemplate = template.Must(template.New("signup").Funcs(sprig.TxtFuncMap()).Parse(signUpTemplateRaw))
	testTemplate   = template.Must(template.New("test").Funcs(sprig.TxtFuncMap()).Parse(testTemplateRaw))
)

// SignUpParams feeds the sign-up notification. Passwords never reach a mail.
type SignUpParams struct {
	Name  string
	Email string
}

// TestParams feeds the test mail.
type TestParams struct {
	ServiceName string
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", tmpl.Name(), err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// RenderSignUp renders the body of the sign-up notification.
func RenderSignUp(p SignUpParams) (string, error) {
	return render(signUpTemplate, p)
}

// RenderTest renders the body of the test mail.
func RenderTest(p TestParams) (string, error) {
	return render(testTemplate, p)
}
