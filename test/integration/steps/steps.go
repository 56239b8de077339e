package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pocket-ledger/backend/internal/domain/valueobject"
)

var placeholderPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

func (t *testContext) iAmRegisteredAs(username string) error {
	if err := t.register(username); err != nil {
		return err
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("unexpected register response: %s", t.response.raw)
	}
	t.accessToken, _ = body["access_token"].(string)
	if id, ok := getFieldValue(body, "user.id").(string); ok {
		t.userID, _ = uuid.Parse(id)
	}

	return t.loadRefs()
}

func (t *testContext) aUserExistsWithUsername(username string) error {
	token := t.accessToken
	t.accessToken = ""
	defer func() { t.accessToken = token }()
	return t.register(username)
}

func (t *testContext) register(username string) error {
	payload, _ := json.Marshal(map[string]string{
		"name":     username,
		"username": username,
		"password": testPassword,
	})
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/register", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("register %q failed with %d: %s", username, t.response.status, t.response.raw)
	}
	return nil
}

// loadRefs records the ids of the user's categories, buckets and semesters
// under "category:<name>", "platform:<name>", "portfolio:<name>" and
// "semester:<name>".
func (t *testContext) loadRefs() error {
	if err := t.executeRequest(http.MethodGet, "/api/v1/facts", nil); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("loading facts failed with %d: %s", t.response.status, t.response.raw)
	}
	body, _ := t.response.body.(map[string]any)

	for field, prefix := range map[string]string{
		"categories": "category",
		"platforms":  "platform",
		"portfolios": "portfolio",
		"semesters":  "semester",
	} {
		items, _ := body[field].([]any)
		for _, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			name, _ := m["name"].(string)
			id, _ := m["id"].(string)
			t.refs[prefix+":"+name] = id
		}
	}
	t.response = nil
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = t.replacePlaceholders(value)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) iRememberTheResponseFieldAs(field, name string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	t.refs[name] = fmt.Sprintf("%v", value)
	return nil
}

// replacePlaceholders substitutes {{access_token}}, {{user_id}},
// {{current_month}}, {{next_month}} and remembered refs.
func (t *testContext) replacePlaceholders(content string) string {
	current := valueobject.MonthKeyFromTime(time.Now())
	return placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		switch key {
		case "access_token":
			return t.accessToken
		case "user_id":
			return t.userID.String()
		case "current_month":
			return current.String()
		case "next_month":
			return current.Shift(1).String()
		}
		if value, ok := t.refs[key]; ok {
			return value
		}
		return match
	})
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status:  resp.StatusCode,
		headers: resp.Header,
		raw:     bodyBytes,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, t.replacePlaceholders(field))
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, t.replacePlaceholders(field)) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBeNull(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if value := getFieldValue(body, t.replacePlaceholders(field)); value != nil {
		return fmt.Errorf("field '%s' expected null, got %v", field, value)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, t.replacePlaceholders(field)).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != quantity {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, quantity, len(items))
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldContain(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := t.response.headers.Get(header)
	if !strings.Contains(value, expected) {
		return fmt.Errorf("header '%s' expected to contain '%s', got '%s'", header, expected, value)
	}
	return nil
}

// jsonBody returns the decoded response object.
func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Table(table)
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var field any = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
				continue
			}
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
