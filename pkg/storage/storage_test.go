package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blackcoderx/apistudio/pkg/core"
	"github.com/blackcoderx/apistudio/pkg/model"
)

func newFileWorkspace(t *testing.T, dir string) *Workspace {
	t.Helper()
	ws, err := Open(NewFileStore(dir, nil))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return ws
}

func sampleRequest() model.Request {
	req := model.NewRequest()
	req.Name = "Create order"
	req.Method = model.MethodPost
	req.URL = "{{base}}/orders"
	req.Headers = []model.Header{
		model.NewHeader("X-Tenant", "{{tenant}}"),
		{ID: "off", Key: "X-Debug", Value: "1", Enabled: false},
	}
	req.Params = []model.Param{model.NewParam("dry", "true")}
	req.Body = model.RawBody{Content: `{"sku":"{{sku}}"}`, Type: model.RawJSON}
	req.Auth = model.BasicAuth{Username: "u", Password: "p"}
	return req
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestFileStoreRoundTripPreservesMaterialization(t *testing.T) {
	dir := t.TempDir()
	ws := newFileWorkspace(t, dir)

	req := sampleRequest()
	if _, err := ws.SaveRequest(req, ""); err != nil {
		t.Fatalf("SaveRequest: %v", err)
	}
	draft := NewEnvironmentDraft("dev")
	draft.AddVariable("base", "http://localhost:8080")
	draft.AddVariable("tenant", "acme")
	draft.AddVariable("sku", "X1")
	env, err := ws.CommitEnvironment(draft)
	if err != nil {
		t.Fatalf("CommitEnvironment: %v", err)
	}
	if _, err := ws.ActivateEnvironment(env.ID); err != nil {
		t.Fatal(err)
	}

	before, _, err := ws.FindRequest(req.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	wantMat, err := core.Materialize(before, ws.ActiveVariables())
	if err != nil {
		t.Fatal(err)
	}

	reloaded := newFileWorkspace(t, dir)
	after, owner, err := reloaded.FindRequest("create ORDER", "")
	if err != nil {
		t.Fatalf("FindRequest after reload: %v", err)
	}
	if owner == "" {
		t.Error("owning collection not reported")
	}
	if mustJSON(t, after) != mustJSON(t, before) {
		t.Errorf("request changed across reload:\n%s\n%s", mustJSON(t, before), mustJSON(t, after))
	}
	gotMat, err := core.Materialize(after, reloaded.ActiveVariables())
	if err != nil {
		t.Fatal(err)
	}
	if mustJSON(t, gotMat) != mustJSON(t, wantMat) {
		t.Errorf("materialization changed across reload:\n%s\n%s", mustJSON(t, wantMat), mustJSON(t, gotMat))
	}
}

func TestFileStoreRemovesDeletedItems(t *testing.T) {
	dir := t.TempDir()
	ws := newFileWorkspace(t, dir)

	c, err := ws.CreateCollection("Temp", "")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(GetCollectionsDir(dir), c.ID+".yaml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("collection file not written: %v", err)
	}
	if err := ws.DeleteCollection("temp"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("collection file still present: %v", err)
	}
}

func TestFileStoreSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	envDir := GetEnvironmentsDir(dir)
	if err := os.MkdirAll(envDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(envDir, "broken.yaml"), []byte("variables: [\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ws := newFileWorkspace(t, dir)
	if _, err := ws.CreateEnvironment("ok"); err != nil {
		t.Fatal(err)
	}
	if got := len(newFileWorkspace(t, dir).Environments()); got != 1 {
		t.Errorf("environments = %d, want 1", got)
	}
}

func TestSaveRequestDefaultCollection(t *testing.T) {
	ws, _ := Open(&MemoryStore{})

	first := model.NewRequest()
	id1, err := ws.SaveRequest(first, "")
	if err != nil {
		t.Fatal(err)
	}
	second := model.NewRequest()
	id2, err := ws.SaveRequest(second, "")
	if err != nil {
		t.Fatal(err)
	}
	if id1 != id2 {
		t.Fatalf("default collection created twice")
	}

	first.URL = "changed.test"
	if _, err := ws.SaveRequest(first, id1); err != nil {
		t.Fatal(err)
	}

	c, err := ws.FindCollection(model.DefaultCollectionName)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Requests) != 2 || c.Requests[0].URL != "changed.test" {
		t.Errorf("unexpected requests %+v", c.Requests)
	}

	if _, err := ws.SaveRequest(model.NewRequest(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("saving into unknown collection: %v", err)
	}
}

func TestSaveRequestTouchesTimestamps(t *testing.T) {
	ws, _ := Open(&MemoryStore{})
	fixed := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	ws.now = func() time.Time { return fixed }

	req := model.NewRequest()
	if _, err := ws.SaveRequest(req, ""); err != nil {
		t.Fatal(err)
	}
	got, _, _ := ws.FindRequest(req.ID, "")
	if !got.UpdatedAt.Equal(fixed) || got.CreatedAt.Equal(fixed) {
		t.Errorf("createdAt=%v updatedAt=%v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestSaveRequestMovesBetweenCollections(t *testing.T) {
	ws, _ := Open(&MemoryStore{})
	other, err := ws.CreateCollection("B", "")
	if err != nil {
		t.Fatal(err)
	}

	req := model.NewRequest()
	first, err := ws.SaveRequest(req, "")
	if err != nil {
		t.Fatal(err)
	}
	req.URL = "moved.test"
	second, err := ws.SaveRequest(req, "B")
	if err != nil {
		t.Fatal(err)
	}
	if second != other.ID || first == second {
		t.Fatalf("owner ids: first %s, second %s, B %s", first, second, other.ID)
	}

	owners := 0
	for _, c := range ws.Collections() {
		if c.IndexOf(req.ID) >= 0 {
			owners++
		}
	}
	if owners != 1 {
		t.Fatalf("request owned by %d collections", owners)
	}

	got, owner, err := ws.FindRequest(req.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if owner != other.ID || got.URL != "moved.test" {
		t.Errorf("FindRequest = %s in %s", got.URL, owner)
	}
}

func TestDeleteRequestAndSearch(t *testing.T) {
	ws, _ := Open(&MemoryStore{})
	users, _ := ws.CreateCollection("Users", "")
	billing, _ := ws.CreateCollection("Billing", "")

	list := model.NewRequest()
	list.Name = "List users"
	invoice := model.NewRequest()
	invoice.Name = "Get invoice"
	userInvoice := model.NewRequest()
	userInvoice.Name = "User invoices"
	for _, step := range []struct {
		req model.Request
		col string
	}{{list, users.ID}, {invoice, billing.ID}, {userInvoice, billing.ID}} {
		if _, err := ws.SaveRequest(step.req, step.col); err != nil {
			t.Fatal(err)
		}
	}

	hits := ws.Search("USER")
	if len(hits) != 2 {
		t.Fatalf("search hits = %d, want 2", len(hits))
	}
	if len(hits[0].Requests) != 1 || len(hits[1].Requests) != 1 || hits[1].Requests[0].Name != "User invoices" {
		t.Errorf("unexpected search result %+v", hits)
	}

	if err := ws.DeleteRequest("get invoice", "billing"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ws.FindRequest(invoice.ID, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted request still found: %v", err)
	}
	if err := ws.DeleteRequest("nope", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleting unknown request: %v", err)
	}
}

func TestActivateEnvironmentIsExclusive(t *testing.T) {
	ws, _ := Open(&MemoryStore{})
	dev, _ := ws.CreateEnvironment("dev")
	prod, _ := ws.CreateEnvironment("prod")

	if _, ok := ws.ActiveEnvironment(); ok {
		t.Fatal("new environments must start inactive")
	}
	if got := ws.ActiveVariables(); got == nil || len(got) != 0 {
		t.Errorf("ActiveVariables without active env = %#v", got)
	}

	for _, ref := range []string{dev.ID, "PROD", dev.Name} {
		if _, err := ws.ActivateEnvironment(ref); err != nil {
			t.Fatal(err)
		}
		active := 0
		for _, env := range ws.Environments() {
			if env.Active {
				active++
			}
		}
		if active != 1 {
			t.Fatalf("after activating %s: %d active environments", ref, active)
		}
	}

	if err := ws.DeleteEnvironment(dev.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok := ws.ActiveEnvironment(); ok {
		t.Error("deleting the active environment should leave none active")
	}
	if _, err := ws.ActivateEnvironment(prod.ID); err != nil {
		t.Fatal(err)
	}
	if err := ws.DeactivateEnvironments(); err != nil {
		t.Fatal(err)
	}
	if _, ok := ws.ActiveEnvironment(); ok {
		t.Error("DeactivateEnvironments left an environment active")
	}
	if _, err := ws.ActivateEnvironment("staging"); !errors.Is(err, ErrNotFound) {
		t.Errorf("activating unknown environment: %v", err)
	}
}

func TestEnvironmentDraft(t *testing.T) {
	ws, _ := Open(&MemoryStore{})
	env, _ := ws.CreateEnvironment("dev")
	if _, err := ws.ActivateEnvironment(env.ID); err != nil {
		t.Fatal(err)
	}

	draft := BeginEdit(env)
	token := draft.AddVariable("token", "abc")
	draft.AddVariable("host", "localhost")
	draft.Rename("development")

	if committed, _ := ws.FindEnvironment(env.ID); len(committed.Variables) != 0 {
		t.Fatal("draft edits leaked into the committed environment")
	}

	if err := draft.UpdateVariable(token.ID, "token", "xyz", true); err != nil {
		t.Fatal(err)
	}
	if err := draft.RemoveVariable("host"); err != nil {
		t.Fatal(err)
	}
	if err := draft.RemoveVariable("host"); !errors.Is(err, ErrNotFound) {
		t.Errorf("removing twice: %v", err)
	}
	draft.SetVariable("token", "final")

	got, err := ws.CommitEnvironment(draft)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "development" || !got.Active || len(got.Variables) != 1 || got.Variables[0].Value != "final" {
		t.Errorf("unexpected committed environment %+v", got)
	}

	discarded := BeginEdit(got)
	discarded.AddVariable("leak", "1")
	discarded.Discard()
	if _, err := ws.CommitEnvironment(discarded); !errors.Is(err, ErrDraftDiscarded) {
		t.Errorf("commit after discard: %v", err)
	}
	if current, _ := ws.FindEnvironment(env.ID); len(current.Variables) != 1 {
		t.Errorf("discarded draft changed the environment: %+v", current)
	}
}

func TestActiveVariablesResolveEnvRefs(t *testing.T) {
	t.Setenv("APISTUDIO_TEST_TOKEN", "from-os")

	ws, _ := Open(&MemoryStore{})
	draft := NewEnvironmentDraft("ci")
	draft.AddVariable("token", "{{env:APISTUDIO_TEST_TOKEN}}")
	draft.AddVariable("other", "{{env:APISTUDIO_TEST_UNSET_VALUE}}")
	env, _ := ws.CommitEnvironment(draft)
	if _, err := ws.ActivateEnvironment(env.ID); err != nil {
		t.Fatal(err)
	}

	vars := ws.ActiveVariables()
	if vars[0].Value != "from-os" {
		t.Errorf("token = %q", vars[0].Value)
	}
	if vars[1].Value != "{{env:APISTUDIO_TEST_UNSET_VALUE}}" {
		t.Errorf("unset reference should stay verbatim, got %q", vars[1].Value)
	}
	if stored, _ := ws.FindEnvironment("ci"); stored.Variables[0].Value != "{{env:APISTUDIO_TEST_TOKEN}}" {
		t.Error("resolution must not rewrite the stored value")
	}
}

func TestImportDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "BASE_URL=http://localhost:3000\nAPI_TOKEN=\"secret token\"\n# comment\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	ws, _ := Open(&MemoryStore{})
	env, err := ws.ImportDotenv(path, "local")
	if err != nil {
		t.Fatalf("ImportDotenv: %v", err)
	}
	if len(env.Variables) != 2 || env.Variables[0].Key != "API_TOKEN" || env.Variables[0].Value != "secret token" {
		t.Errorf("unexpected variables %+v", env.Variables)
	}

	if _, err := ws.ImportDotenv(filepath.Join(t.TempDir(), "missing.env"), "x"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExportImport(t *testing.T) {
	src, _ := Open(&MemoryStore{})
	if _, err := src.SaveRequest(sampleRequest(), ""); err != nil {
		t.Fatal(err)
	}
	env, _ := src.CreateEnvironment("dev")
	if _, err := src.ActivateEnvironment(env.ID); err != nil {
		t.Fatal(err)
	}
	data, err := src.Export()
	if err != nil {
		t.Fatal(err)
	}

	dst, _ := Open(&MemoryStore{})
	summary, err := dst.Import(data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if summary.CollectionsAdded != 1 || summary.EnvironmentsAdded != 1 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if _, ok := dst.ActiveEnvironment(); ok {
		t.Error("import must not activate environments")
	}

	summary, err = dst.Import(data)
	if err != nil {
		t.Fatal(err)
	}
	if summary.CollectionsReplaced != 1 || summary.EnvironmentsReplaced != 1 || len(dst.Collections()) != 1 {
		t.Errorf("re-import should replace by id: %+v", summary)
	}
}

// failingStore refuses collection writes once armed.
type failingStore struct {
	MemoryStore
	failCollections bool
}

func (s *failingStore) SaveCollections(collections []model.Collection) error {
	if s.failCollections {
		return errors.New("disk full")
	}
	return s.MemoryStore.SaveCollections(collections)
}

func TestImportIsAllOrNothing(t *testing.T) {
	src, _ := Open(&MemoryStore{})
	if _, err := src.SaveRequest(sampleRequest(), ""); err != nil {
		t.Fatal(err)
	}
	if _, err := src.CreateEnvironment("dev"); err != nil {
		t.Fatal(err)
	}
	data, err := src.Export()
	if err != nil {
		t.Fatal(err)
	}

	store := &failingStore{}
	dst, _ := Open(store)
	store.failCollections = true

	if _, err := dst.Import(data); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("Import error = %v", err)
	}
	if len(dst.Collections()) != 0 || len(dst.Environments()) != 0 {
		t.Errorf("partial import: %d collections, %d environments", len(dst.Collections()), len(dst.Environments()))
	}
	if len(store.Environments) != 0 {
		t.Errorf("environments left in the store: %+v", store.Environments)
	}
}

func TestImportMovesRequestsBetweenCollections(t *testing.T) {
	ws, _ := Open(&MemoryStore{})
	req := sampleRequest()
	if _, err := ws.SaveRequest(req, ""); err != nil {
		t.Fatal(err)
	}

	doc := `{"collections":[{"id":"c2","name":"Imported","requests":[{"id":"` + req.ID + `","name":"a","method":"GET","url":"x"}]}],"environments":[]}`
	if _, err := ws.Import([]byte(doc)); err != nil {
		t.Fatalf("Import: %v", err)
	}
	_, owner, err := ws.FindRequest(req.ID, "")
	if err != nil {
		t.Fatal(err)
	}
	if owner != "c2" {
		t.Errorf("owner = %s", owner)
	}
	def, _ := ws.FindCollection(model.DefaultCollectionName)
	if len(def.Requests) != 0 {
		t.Errorf("request still in %s", def.Name)
	}
}

func TestImportRejectsInvalidDocument(t *testing.T) {
	ws, _ := Open(&MemoryStore{})
	doc := `{"collections":[{"id":"c1","name":"x","requests":[{"id":"r1","name":"a","method":"TRACE","url":"x"}]}],"environments":[{"name":"no id"}]}`

	_, err := ws.Import([]byte(doc))
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"invalid import document", "method", "id"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
	if len(ws.Collections()) != 0 {
		t.Error("invalid import changed the workspace")
	}
}

func TestRequestDiff(t *testing.T) {
	before := sampleRequest()
	after := before.Clone()
	after.URL = "{{base}}/v2/orders"
	after.UpdatedAt = before.UpdatedAt.Add(time.Hour)

	diff, err := RequestDiff(before, after)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(diff, "-url:") || !strings.Contains(diff, "+url:") || !strings.Contains(diff, "v2/orders") {
		t.Errorf("unexpected diff:\n%s", diff)
	}
	if strings.Contains(diff, "updatedAt") {
		t.Errorf("timestamp change should not show up:\n%s", diff)
	}

	same, err := RequestDiff(before, before)
	if err != nil || same != "" {
		t.Errorf("identical requests produced %q, %v", same, err)
	}
}
