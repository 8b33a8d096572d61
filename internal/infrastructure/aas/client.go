package aas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"bpa-inspection/internal/domain/entity"
	"bpa-inspection/internal/domain/port"
)

// Имена подмоделей и элементов оболочки автомобиля
const (
	InspectionPlanSubmodel = "Inspection_Plan"
	InspectionPlanElement  = "Inspection_Plan"
	ResponsePlanSubmodel   = "Response_Plan"
	ResponsePlanElement    = "Response_Placeholder"
	ResponseFileName       = "InspectionResponse.json"
)

const defaultTimeout = 6 * time.Second

type shellList struct {
	Result []shellDescriptor `json:"result"`
}

type shellDescriptor struct {
	IDShort   string     `json:"idShort"`
	Endpoints []endpoint `json:"endpoints"`
}

type endpoint struct {
	ProtocolInformation struct {
		Href string `json:"href"`
	} `json:"protocolInformation"`
}

type submodelList struct {
	Result []struct {
		IDShort string `json:"idShort"`
		ID      string `json:"id"`
	} `json:"result"`
}

// Client клиент реестра Asset Administration Shell
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger

	mu      sync.RWMutex
	healthy bool
}

// NewClient создаёт клиента реестра. httpClient может быть nil.
// Клиент без собственного Timeout получает timeout.
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	switch {
	case httpClient == nil:
		httpClient = &http.Client{Timeout: timeout}
	case httpClient.Timeout == 0:
		withTimeout := *httpClient
		withTimeout.Timeout = timeout
		httpClient = &withTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        log.With().Str("component", "aas").Logger(),
	}
}

// TestConnection проверяет, что реестр отвечает 200.
func (c *Client) TestConnection(ctx context.Context) bool {
	_, status, err := c.get(ctx, c.baseURL)
	ok := err == nil && status == http.StatusOK

	c.mu.Lock()
	c.healthy = ok
	c.mu.Unlock()

	if !ok {
		c.log.Error().Err(err).Int("status", status).Str("url", c.baseURL).Msg("registry is not reachable")
	}
	return ok
}

// Healthy возвращает результат последней проверки
func (c *Client) Healthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.healthy
}

// GetInspectionPlan загружает план инспекции оболочки autoID.
func (c *Client) GetInspectionPlan(ctx context.Context, autoID string) (*entity.InspectionPlan, error) {
	log := c.log.With().Str("auto_id", autoID).Logger()

	data, err := c.fetchAttachment(ctx, autoID, InspectionPlanSubmodel, InspectionPlanElement)
	if err != nil {
		log.Error().Err(err).Msg("failed to get inspection plan")
		return nil, err
	}

	plan, err := entity.DecodeInspectionPlan(data)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode inspection plan")
		return nil, err
	}

	log.Info().Int("classes", len(plan.Classes)).Msg("inspection plan loaded")
	return plan, nil
}

// GetInspectionResponse загружает записанный ответ инспекции.
func (c *Client) GetInspectionResponse(ctx context.Context, autoID string) (*entity.ResponsePlan, error) {
	log := c.log.With().Str("auto_id", autoID).Logger()

	data, err := c.fetchAttachment(ctx, autoID, ResponsePlanSubmodel, ResponsePlanElement)
	if err != nil {
		log.Error().Err(err).Msg("failed to get inspection response")
		return nil, err
	}

	plan, err := entity.DecodeResponsePlan(data)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode inspection response")
		return nil, err
	}
	return plan, nil
}

// PutInspectionResponse загружает ответ инспекции во вложение Response_Placeholder.
func (c *Client) PutInspectionResponse(ctx context.Context, autoID string, plan *entity.ResponsePlan) error {
	log := c.log.With().Str("auto_id", autoID).Logger()

	err := c.putResponse(ctx, autoID, plan)
	if err != nil {
		log.Warn().Err(err).Msg("putting inspection response failed")
		return err
	}

	log.Info().Msg("inspection response stored")
	return nil
}

// GetAllIDShorts возвращает idShort всех оболочек реестра.
func (c *Client) GetAllIDShorts(ctx context.Context) []string {
	shells, err := c.shells(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to list shells")
		return []string{}
	}

	ids := make([]string, 0, len(shells.Result))
	for _, shell := range shells.Result {
		if shell.IDShort != "" {
			ids = append(ids, shell.IDShort)
		}
	}
	return ids
}

func (c *Client) fetchAttachment(ctx context.Context, autoID, submodel, element string) ([]byte, error) {
	host, err := c.resolveHost(ctx, autoID)
	if err != nil {
		return nil, err
	}

	submodelID, err := c.submodelID(ctx, host, submodel)
	if err != nil {
		return nil, err
	}

	data, status, err := c.get(ctx, attachmentURL(host, submodelID, element))
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &entity.LookupError{Stage: entity.StageAttachment, Key: element}
	}
	return data, nil
}

func (c *Client) putResponse(ctx context.Context, autoID string, plan *entity.ResponsePlan) error {
	host, err := c.resolveHost(ctx, autoID)
	if err != nil {
		return err
	}

	submodelID, err := c.submodelID(ctx, host, ResponsePlanSubmodel)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(plan, "", "    ")
	if err != nil {
		return fmt.Errorf("encode response plan: %w", err)
	}

	body, contentType, err := multipartFile(ResponseFileName, payload)
	if err != nil {
		return err
	}

	target := attachmentURL(host, submodelID, ResponsePlanElement) + "?fileName=" + url.QueryEscape(ResponseFileName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("put attachment: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("put attachment: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// resolveHost находит host:port оболочки с точным idShort.
func (c *Client) resolveHost(ctx context.Context, autoID string) (string, error) {
	shells, err := c.shells(ctx)
	if err != nil {
		return "", err
	}

	for _, shell := range shells.Result {
		if shell.IDShort != autoID {
			continue
		}
		if len(shell.Endpoints) == 0 {
			return "", fmt.Errorf("shell %q has no endpoints: %w", autoID, entity.ErrMalformedHref)
		}
		host, err := HostFromHref(shell.Endpoints[0].ProtocolInformation.Href)
		if err != nil {
			return "", err
		}
		c.log.Debug().Str("auto_id", autoID).Str("host", host).Msg("shell endpoint resolved")
		return host, nil
	}
	return "", &entity.LookupError{Stage: entity.StageShell, Key: autoID}
}

func (c *Client) shells(ctx context.Context) (*shellList, error) {
	data, status, err := c.get(ctx, c.baseURL)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("registry: unexpected status %d", status)
	}

	var shells shellList
	if err := json.Unmarshal(data, &shells); err != nil {
		return nil, fmt.Errorf("registry listing: %v: %w", err, entity.ErrDecode)
	}
	return &shells, nil
}

// submodelID возвращает закодированный идентификатор подмодели idShort на хосте оболочки.
func (c *Client) submodelID(ctx context.Context, host, idShort string) (string, error) {
	data, status, err := c.get(ctx, submodelsURL(host))
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("submodels on %s: unexpected status %d", host, status)
	}

	var list submodelList
	if err := json.Unmarshal(data, &list); err != nil {
		return "", fmt.Errorf("submodel listing: %v: %w", err, entity.ErrDecode)
	}

	for _, sm := range list.Result {
		if sm.IDShort == idShort {
			return EncodeID(sm.ID), nil
		}
	}
	return "", &entity.LookupError{Stage: entity.StageSubmodel, Key: idShort}
}

func (c *Client) get(ctx context.Context, target string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return data, resp.StatusCode, nil
}

// multipartFile собирает тело с единственным полем file типа application/json.
func multipartFile(fileName string, payload []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
	header.Set("Content-Type", "application/json")

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(payload); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// Проверка реализации интерфейса
var _ port.Registry = (*Client)(nil)
