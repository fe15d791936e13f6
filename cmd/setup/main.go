package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultServerURL = "http://localhost:3536"

// Default object types seeded into a fresh server.
var defaultTypes = []string{
	"Herramientas",
	"Papelería",
	"Electrónica",
	"Cocina",
	"Ropa",
	"Juguetes",
	"Documentos",
	"Varios",
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type step int

const (
	stepEnteringServer step = iota
	stepChoosingMode
	stepEnteringDNI
	stepEnteringUsername
	stepEnteringEmail
	stepEnteringPassword
	stepAuthenticating
	stepSeedingTypes
	stepComplete
)

type model struct {
	step         step
	serverURL    string
	registering  bool
	cursor       int
	dni          string
	username     string
	email        string
	password     string
	authToken    string
	currentInput string
	message      string
	seeded       int
	skipped      int
	quitting     bool
}

type authSuccessMsg struct{ token string }
type seedDoneMsg struct {
	seeded  int
	skipped int
}
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel() model {
	return model{
		step:         stepEnteringServer,
		currentInput: defaultServerURL,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func registerUser(serverURL, dni, username, email, password string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		payload := map[string]string{
			"dni":      dni,
			"username": username,
			"email":    email,
			"password": password,
		}
		jsonData, _ := json.Marshal(payload)

		req, _ := http.NewRequest("POST", serverURL+"/api/v1/auth/register", bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("server not reachable: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			body, _ := io.ReadAll(resp.Body)
			return errMsg{fmt.Errorf("registration failed (%d): %s", resp.StatusCode, string(body))}
		}

		var result map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return errMsg{fmt.Errorf("unexpected response from server")}
		}
		token, _ := result["access_token"].(string)
		if token == "" {
			return errMsg{fmt.Errorf("server did not return an access token")}
		}
		return authSuccessMsg{token: token}
	}
}

func loginUser(serverURL, username, password string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		payload := map[string]string{
			"username": username,
			"password": password,
		}
		jsonData, _ := json.Marshal(payload)

		req, _ := http.NewRequest("POST", serverURL+"/api/v1/auth/login", bytes.NewBuffer(jsonData))
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("server not reachable: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("invalid username or password")}
		}

		var result map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return errMsg{fmt.Errorf("unexpected response from server")}
		}
		token, _ := result["access_token"].(string)
		if token == "" {
			return errMsg{fmt.Errorf("server did not return an access token")}
		}
		return authSuccessMsg{token: token}
	}
}

func seedObjectTypes(serverURL, token string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		seeded, skipped := 0, 0
		for _, name := range defaultTypes {
			jsonData, _ := json.Marshal(map[string]string{"name": name})

			req, _ := http.NewRequest("POST", serverURL+"/api/v1/object-types", bytes.NewBuffer(jsonData))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := client.Do(req)
			if err != nil {
				return errMsg{fmt.Errorf("seeding failed at %q: %w", name, err)}
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			switch resp.StatusCode {
			case http.StatusCreated:
				seeded++
			case http.StatusBadRequest:
				// Already exists on a previously seeded server.
				skipped++
			default:
				return errMsg{fmt.Errorf("seeding %q returned status %d", name, resp.StatusCode)}
			}
		}
		return seedDoneMsg{seeded: seeded, skipped: skipped}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "q":
			if m.step == stepChoosingMode || m.step == stepComplete {
				m.quitting = true
				return m, tea.Quit
			}
			m.currentInput += "q"

		case "up", "k":
			if m.step == stepChoosingMode && m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.step == stepChoosingMode && m.cursor < 1 {
				m.cursor++
			}

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}

		default:
			if m.step != stepChoosingMode && m.step != stepAuthenticating && m.step != stepSeedingTypes {
				m.currentInput += msg.String()
			}

		case "enter":
			switch m.step {
			case stepEnteringServer:
				if m.currentInput != "" {
					m.serverURL = strings.TrimRight(m.currentInput, "/")
					m.currentInput = ""
					m.step = stepChoosingMode
				}

			case stepChoosingMode:
				m.registering = m.cursor == 0
				if m.registering {
					m.step = stepEnteringDNI
				} else {
					m.step = stepEnteringUsername
				}

			case stepEnteringDNI:
				if m.currentInput != "" {
					m.dni = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringUsername
				}

			case stepEnteringUsername:
				if m.currentInput != "" {
					m.username = m.currentInput
					m.currentInput = ""
					if m.registering {
						m.step = stepEnteringEmail
					} else {
						m.step = stepEnteringPassword
					}
				}

			case stepEnteringEmail:
				if m.currentInput != "" {
					m.email = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringPassword
				}

			case stepEnteringPassword:
				if m.currentInput != "" {
					m.password = m.currentInput
					m.currentInput = ""
					m.step = stepAuthenticating
					if m.registering {
						m.message = "Registering..."
						return m, registerUser(m.serverURL, m.dni, m.username, m.email, m.password)
					}
					m.message = "Logging in..."
					return m, loginUser(m.serverURL, m.username, m.password)
				}

			case stepComplete:
				m.quitting = true
				return m, tea.Quit
			}
		}

	case authSuccessMsg:
		m.authToken = msg.token
		m.step = stepSeedingTypes
		m.message = successStyle.Render("✓ Authenticated as " + m.username)
		return m, seedObjectTypes(m.serverURL, m.authToken)

	case seedDoneMsg:
		m.seeded = msg.seeded
		m.skipped = msg.skipped
		m.step = stepComplete
		m.message = successStyle.Render("✓ Setup complete!")

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		m.step = stepChoosingMode
		m.cursor = 0
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("🗄  Inventory Server Setup\n\n"))

	switch m.step {
	case stepEnteringServer:
		s.WriteString(promptStyle.Render("Server URL:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepChoosingMode:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("Choose an option:\n\n"))
		options := []string{"Register a new account", "Log in with an existing account"}
		for i, opt := range options {
			cursor := " "
			style := normalStyle
			if m.cursor == i {
				cursor = ">"
				style = selectedStyle
			}
			s.WriteString(fmt.Sprintf("%s %s\n", cursor, style.Render(opt)))
		}
		s.WriteString("\nUse ↑/↓, Enter to select, q to quit\n")

	case stepEnteringDNI:
		s.WriteString(promptStyle.Render("Enter your DNI:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringUsername:
		s.WriteString(promptStyle.Render("Enter your username:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringEmail:
		s.WriteString(promptStyle.Render("Enter your email:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringPassword:
		s.WriteString(promptStyle.Render("Enter your password:\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("•", len(m.currentInput))))
		s.WriteString("\n\nPress Enter\n")

	case stepAuthenticating:
		s.WriteString(m.message + "\n")

	case stepSeedingTypes:
		s.WriteString(m.message + "\n\n")
		s.WriteString("Seeding default object types...\n")

	case stepComplete:
		s.WriteString(m.message + "\n\n")
		s.WriteString(fmt.Sprintf("Object types created: %d, already present: %d\n", m.seeded, m.skipped))
		s.WriteString("\nPress Enter to exit\n")
	}

	return s.String()
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
