package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"inventory-server/apperrors"
	"inventory-server/confs"
	"inventory-server/entities"
	"inventory-server/usecases"
)

// systemPrompt is the fixed instruction block sent with every recommendation
// request. The provider must answer with the JSON document described at the
// end.
const systemPrompt = "Eres un experto recomendando acciones simulando un comportamiento inteligente: " +
	"- Como eliminar objetos repetidos con el mismo nombre, tipo y tamaño en un cajón. " +
	"- Como ordenar los objetos por tipo o tamaño de cajón. " +
	"- Retornar mensajes de advertencia o éxito como por ejemplo: 'No se encontraron objetos duplicados.'. " +
	"- Generar recomendaciones automáticas que ayuden al usuario a mantener sus cajones organizados y optimizados " +
	"en base al análisis de la información del cajón siguiendo las siguientes 3 reglas: " +
	"1. No repetir objetos con el mismo nombre, tipo y tamaño en un cajón. " +
	"2. Ordenar los objetos por tipo o tamaño de cajón. " +
	"3. Retornar mensajes de advertencia o éxito como por ejemplo: 'No se encontraron objetos duplicados.'. " +
	"- Salida de datos esperada un JSON en formato: " +
	`{"recomendaciones": ["Eliminar objetos duplicados", "Ordenar objetos por tipo o tamaño"], ` +
	`"mensajes": ["No se encontraron objetos duplicados."], ` +
	`"acciones": {"eliminar_duplicados": true, "ordenar_por_tipo": true, "ordenar_por_tamanio": true}}`

// RecommendedActions is the machine-actionable part of a recommendation.
type RecommendedActions struct {
	EliminarDuplicados bool `json:"eliminar_duplicados"`
	OrdenarPorTipo     bool `json:"ordenar_por_tipo"`
	OrdenarPorTamanio  bool `json:"ordenar_por_tamanio"`
}

// Recommendation is the parsed provider response relayed to the caller.
type Recommendation struct {
	Recomendaciones []string           `json:"recomendaciones"`
	Mensajes        []string           `json:"mensajes"`
	Acciones        RecommendedActions `json:"acciones"`
}

// ApplySummary reports which recommended actions were carried out.
type ApplySummary struct {
	DuplicateGroupsRemoved int  `json:"duplicate_groups_removed"`
	ObjectsRemoved         int  `json:"objects_removed"`
	SortedByType           bool `json:"sorted_by_type"`
	SortedBySize           bool `json:"sorted_by_size"`
}

// chat-completion wire format, request side.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// drawerSnapshot is the serialized drawer state embedded in the user message.
type drawerSnapshot struct {
	Drawer struct {
		ID        uint   `json:"id"`
		Name      string `json:"name"`
		MaxObj    int    `json:"max_obj"`
		ActualObj int    `json:"actual_obj"`
	} `json:"drawer"`
	Objects []snapshotObject `json:"objects"`
}

type snapshotObject struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Type uint   `json:"type"`
	Size string `json:"size"`
}

// Recommender bridges drawers to the external completion provider and
// applies the actions it suggests.
type Recommender struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string

	objects *usecases.ObjectUseCase
	drawers *usecases.DrawerUseCase
}

func NewRecommender(cfg *confs.Config, objects *usecases.ObjectUseCase, drawers *usecases.DrawerUseCase) *Recommender {
	return &Recommender{
		client:  &http.Client{Timeout: cfg.AITimeout},
		baseURL: cfg.AIBaseURL,
		apiKey:  cfg.AIAPIKey,
		model:   cfg.AIModel,
		objects: objects,
		drawers: drawers,
	}
}

// Request serializes the drawer and its objects, sends them to the provider,
// and parses the JSON document the completion must contain. Provider
// failures and malformed payloads surface as RecommendationError; there is
// no retry.
func (r *Recommender) Request(ctx context.Context, drawer *entities.Drawer, objects []entities.Object) (*Recommendation, error) {
	var snapshot drawerSnapshot
	snapshot.Drawer.ID = drawer.ID
	snapshot.Drawer.Name = drawer.Name
	snapshot.Drawer.MaxObj = drawer.MaxObj
	snapshot.Drawer.ActualObj = drawer.ActualObj
	snapshot.Objects = make([]snapshotObject, 0, len(objects))
	for _, obj := range objects {
		snapshot.Objects = append(snapshot.Objects, snapshotObject{
			ID:   obj.ID,
			Name: obj.Name,
			Type: obj.ObjectTypeID,
			Size: string(obj.SizeConcept),
		})
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, apperrors.Recommendation("failed to serialize drawer snapshot", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: r.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Analiza los siguientes objetos en el cajón y proporciona recomendaciones para organizarlos mejor: " + string(payload)},
		},
	})
	if err != nil {
		return nil, apperrors.Recommendation("failed to build provider request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Recommendation("failed to build provider request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, apperrors.Recommendation("provider request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Recommendation("failed to read provider response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Recommendation(fmt.Sprintf("provider returned status %d", resp.StatusCode), nil)
	}

	var completion chatResponse
	if err := json.Unmarshal(raw, &completion); err != nil {
		return nil, apperrors.Recommendation("malformed provider response", err)
	}
	if len(completion.Choices) == 0 {
		return nil, apperrors.Recommendation("provider returned no choices", nil)
	}

	var rec Recommendation
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &rec); err != nil {
		return nil, apperrors.Recommendation("completion text is not the expected JSON document", err)
	}
	return &rec, nil
}

// Apply carries out the requested actions on a drawer the caller already
// owns: duplicate removal keeps the first object of each (name, type, size)
// group and deletes the rest through the owner's delete path, so occupancy
// counters and the audit trail stay correct. The sort actions are the
// declared no-op placeholders.
func (r *Recommender) Apply(ownerID string, drawerID uint, actions RecommendedActions) (*ApplySummary, error) {
	summary := &ApplySummary{}

	if actions.EliminarDuplicados {
		groups, err := r.objects.FindDuplicateObjects(drawerID)
		if err != nil {
			return nil, err
		}
		for _, group := range groups {
			for _, objectID := range group[1:] {
				if _, err := r.objects.DeleteObject(ownerID, objectID); err != nil {
					return nil, err
				}
				summary.ObjectsRemoved++
			}
		}
		summary.DuplicateGroupsRemoved = len(groups)
	}

	if actions.OrdenarPorTipo {
		ok, err := r.objects.SortObjectsByType(drawerID)
		if err != nil {
			return nil, err
		}
		summary.SortedByType = ok
	}
	if actions.OrdenarPorTamanio {
		ok, err := r.objects.SortObjectsBySize(drawerID)
		if err != nil {
			return nil, err
		}
		summary.SortedBySize = ok
	}

	r.drawers.RegisterAction(drawerID, ownerID, entities.ActionApplyAIRecommend, "Applied AI recommendations")
	return summary, nil
}
