// Package service orchestrates deck generation: prompting the LLM, repairing
// its JSON, building the content model, and rendering the .pptx file.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/amrenholt/deckbuild/internal/deck"
	"github.com/amrenholt/deckbuild/internal/history"
	"github.com/amrenholt/deckbuild/internal/icons"
	"github.com/amrenholt/deckbuild/internal/layout"
	"github.com/amrenholt/deckbuild/internal/llm"
	"github.com/amrenholt/deckbuild/internal/pptx"
	"github.com/amrenholt/deckbuild/internal/prompt"
	"github.com/amrenholt/deckbuild/internal/render"
	"github.com/amrenholt/deckbuild/internal/repair"
)

// MaxHistoryMessages caps the length of a revision conversation. Past this,
// the thread must be reset.
const MaxHistoryMessages = 16

var (
	// ErrHistoryFull means the thread reached MaxHistoryMessages.
	ErrHistoryFull = errors.New("chat history is full, reset the thread to continue")

	// ErrNothingToRevise means the thread holds no accepted deck yet.
	ErrNothingToRevise = errors.New("no deck has been generated on this thread yet")
)

// DeckService generates and revises slide decks.
type DeckService struct {
	client       llm.Client
	store        *history.Store
	templatePath string // empty selects the built-in starter template
	iconCatalog  *icons.Catalog
	policy       layout.Policy
}

// Config wires a DeckService.
type Config struct {
	Client       llm.Client
	Store        *history.Store
	TemplatePath string
	IconCatalog  *icons.Catalog
	Policy       layout.Policy
}

// NewDeckService creates a DeckService.
func NewDeckService(cfg Config) *DeckService {
	pol := cfg.Policy
	if pol.BaseFontPt == 0 {
		pol = layout.LoadPolicy()
	}
	return &DeckService{
		client:       cfg.Client,
		store:        cfg.Store,
		templatePath: cfg.TemplatePath,
		iconCatalog:  cfg.IconCatalog,
		policy:       pol,
	}
}

// Result describes one generated deck.
type Result struct {
	ThreadID string
	Path     string
	Document *deck.Document
	JSON     string // the repaired deck JSON, canonical form
	Warnings []deck.Warning
}

// Generate produces a first-draft deck for the topic and saves it to
// outPath. The conversation is persisted so the deck can be revised later.
func (s *DeckService) Generate(ctx context.Context, topic, additionalInfo, outPath string) (*Result, error) {
	userPrompt, err := prompt.Initial(prompt.InitialData{
		Topic:          topic,
		AdditionalInfo: additionalInfo,
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Chat(ctx, llm.ChatRequest{
		Task: llm.TaskGenerate,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompt.System},
			{Role: llm.RoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("generating deck: %w", err)
	}

	result, err := s.buildDeck(resp.Text, outPath)
	if err != nil {
		return nil, err
	}

	thread, err := s.store.CreateThread(ctx, topic, s.templatePath)
	if err != nil {
		return nil, err
	}
	result.ThreadID = thread.ID

	if err := s.recordExchange(ctx, thread.ID, topic, result.JSON); err != nil {
		return nil, err
	}
	return result, nil
}

// Revise applies new instructions to the thread's last accepted deck and
// saves the revision to outPath.
func (s *DeckService) Revise(ctx context.Context, threadID, instructions, outPath string) (*Result, error) {
	thread, err := s.store.GetThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if thread.LastJSON == "" {
		return nil, ErrNothingToRevise
	}

	count, err := s.store.CountMessages(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if count >= MaxHistoryMessages {
		return nil, ErrHistoryFull
	}

	priorInstructions, err := s.store.UserMessages(ctx, threadID)
	if err != nil {
		return nil, err
	}

	userPrompt, err := prompt.Refinement(prompt.RefinementData{
		Instructions:    append(priorInstructions, instructions),
		PreviousContent: thread.LastJSON,
	})
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Chat(ctx, llm.ChatRequest{
		Task: llm.TaskRefine,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: prompt.System},
			{Role: llm.RoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("revising deck: %w", err)
	}

	result, err := s.buildDeck(resp.Text, outPath)
	if err != nil {
		return nil, err
	}
	result.ThreadID = threadID

	if err := s.recordExchange(ctx, threadID, instructions, result.JSON); err != nil {
		return nil, err
	}
	return result, nil
}

// GenerateFromJSON renders a deck straight from raw LLM output, with no LLM
// call and no thread. This is the offline path.
func (s *DeckService) GenerateFromJSON(raw, outPath string) (*Result, error) {
	return s.buildDeck(raw, outPath)
}

// ResetThread discards a thread and its conversation.
func (s *DeckService) ResetThread(ctx context.Context, threadID string) error {
	return s.store.DeleteThread(ctx, threadID)
}

// buildDeck runs the rendering pipeline on raw LLM text.
func (s *DeckService) buildDeck(raw, outPath string) (*Result, error) {
	parsed, warns, err := repair.Repair(raw)
	if err != nil {
		return nil, err
	}

	doc, buildWarns := deck.Build(parsed)
	warns = append(warns, buildWarns...)

	tpl, err := s.loadTemplate()
	if err != nil {
		return nil, err
	}

	pres, renderWarns, err := render.Assemble(doc, tpl, render.Options{
		TemplatePath: s.templatePath,
		Icons:        s.iconCatalog,
		Policy:       s.policy,
	})
	if err != nil {
		return nil, err
	}
	warns = append(warns, renderWarns...)

	if err := pres.Save(outPath); err != nil {
		return nil, err
	}

	canonical, err := json.Marshal(parsed)
	if err != nil {
		return nil, fmt.Errorf("encoding repaired deck: %w", err)
	}

	return &Result{
		Path:     outPath,
		Document: doc,
		JSON:     string(canonical),
		Warnings: warns,
	}, nil
}

func (s *DeckService) loadTemplate() (*pptx.Template, error) {
	if s.templatePath == "" {
		return pptx.StarterTemplate()
	}
	return pptx.OpenTemplate(s.templatePath)
}

// recordExchange appends the user/assistant turn pair and pins the accepted
// JSON on the thread.
func (s *DeckService) recordExchange(ctx context.Context, threadID, userText, deckJSON string) error {
	if _, err := s.store.AppendMessage(ctx, threadID, history.RoleUser, userText); err != nil {
		return err
	}
	if _, err := s.store.AppendMessage(ctx, threadID, history.RoleAssistant, deckJSON); err != nil {
		return err
	}
	return s.store.SetLastJSON(ctx, threadID, deckJSON)
}
