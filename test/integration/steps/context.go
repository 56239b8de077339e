// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/config"
	"github.com/pocket-ledger/backend/internal/infra/dependency"
	"github.com/pocket-ledger/backend/internal/integration/persistence/model"
	"github.com/pocket-ledger/backend/test/integration/mock"
)

const (
	testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
	testPassword  = "secret123"
)

// testContext holds the state of one scenario.
type testContext struct {
	uri         string
	headers     map[string]string
	client      *http.Client
	response    *response
	db          *mock.Db
	redis       *mock.Redis
	accessToken string
	userID      uuid.UUID
	// refs maps placeholder names such as "category:Food" to ids.
	refs map[string]string
}

type response struct {
	status  int
	headers http.Header
	body    any
	raw     []byte
}

var serverInit sync.Once
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		initializePort()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:    fmt.Sprintf("http://localhost:%d", testServerPort),
		client: &http.Client{Timeout: 10 * time.Second},
		db:     mock.NewDb(model.AllModels()...),
		redis:  mock.NewRedis(),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^I am registered as "([^"]*)"$`, test.iAmRegisteredAs)
	ctx.Given(`^a user exists with username "([^"]*)"$`, test.aUserExistsWithUsername)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I remember the response field "([^"]*)" as "([^"]*)"$`, test.iRememberTheResponseFieldAs)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should be null$`, test.theResponseFieldShouldBeNull)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should contain "([^"]*)"$`, test.theResponseHeaderShouldContain)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.userID = uuid.Nil
	t.refs = make(map[string]string)

	if err := t.redis.Clear(); err != nil {
		return err
	}
	return t.db.ClearDB()
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret

		injector := dependency.NewInjector(cfg, t.db.DbConn, t.redis.Client)
		engine := injector.Router.Setup(cfg.Server.Environment)

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", testServerPort),
			Handler: engine,
		}
		go func() {
			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}
