package recognizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// CLU calls a conversational-language-understanding REST endpoint and maps
// its prediction onto the bot's intent set.
type CLU struct {
	endpoint   string
	key        string
	project    string
	deployment string
	http       *http.Client
}

func NewCLU(endpoint, key, project, deployment string) *CLU {
	return &CLU{
		endpoint:   endpoint,
		key:        key,
		project:    project,
		deployment: deployment,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

type cluRequest struct {
	Kind          string `json:"kind"`
	AnalysisInput struct {
		ConversationItem struct {
			ID            string `json:"id"`
			ParticipantID string `json:"participantId"`
			Text          string `json:"text"`
		} `json:"conversationItem"`
	} `json:"analysisInput"`
	Parameters struct {
		ProjectName     string `json:"projectName"`
		DeploymentName  string `json:"deploymentName"`
		StringIndexType string `json:"stringIndexType"`
	} `json:"parameters"`
}

type cluResponse struct {
	Result struct {
		Prediction struct {
			TopIntent string `json:"topIntent"`
			Intents   []struct {
				Category        string  `json:"category"`
				ConfidenceScore float64 `json:"confidenceScore"`
			} `json:"intents"`
			Entities []struct {
				Category string `json:"category"`
				Text     string `json:"text"`
			} `json:"entities"`
		} `json:"prediction"`
	} `json:"result"`
}

func (c *CLU) Recognize(ctx context.Context, text string) (Result, error) {
	var reqBody cluRequest
	reqBody.Kind = "Conversation"
	reqBody.AnalysisInput.ConversationItem.ID = "1"
	reqBody.AnalysisInput.ConversationItem.ParticipantID = "user"
	reqBody.AnalysisInput.ConversationItem.Text = text
	reqBody.Parameters.ProjectName = c.project
	reqBody.Parameters.DeploymentName = c.deployment
	reqBody.Parameters.StringIndexType = "TextElement_V8"

	body, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, err
	}

	url := c.endpoint + "/language/:analyze-conversations?api-version=2023-04-01"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("recognizer: unexpected status %d", resp.StatusCode)
	}

	var cluResp cluResponse
	if err := json.NewDecoder(resp.Body).Decode(&cluResp); err != nil {
		return Result{}, err
	}

	pred := cluResp.Result.Prediction

	result := Result{TopIntent: ParseIntent(pred.TopIntent)}
	for _, intent := range pred.Intents {
		if intent.Category == pred.TopIntent {
			result.Score = intent.ConfidenceScore
		}
	}

	for _, e := range pred.Entities {
		switch e.Category {
		case "FirstName":
			result.Entities.FirstName = e.Text
		case "LastName":
			result.Entities.LastName = e.Text
		case "LicensePlate":
			result.Entities.LicensePlate = e.Text
		case "Mail":
			result.Entities.Mail = e.Text
		case "PhoneNumber":
			result.Entities.PhoneNumber = e.Text
		case "RepairType":
			result.Entities.RepairType = e.Text
		case "TimeSlot":
			result.Entities.TimeSlot = e.Text
		case "AppointmentDate":
			result.Entities.AppointmentDate = e.Text
		}
	}

	return result, nil
}
