package handlers

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dskvich/old-russian-bot/pkg/processor"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const oldRussian = "Не лепо ли ны бяшет, братие, начяти старыми словесы трудныхъ повестий о пълку Игореве"

func newTestPipeline(t *testing.T, fc *fakeCompleter, store *fakeStore, concurrent bool) *Pipeline {
	t.Helper()
	p, err := processor.New(fc, "llama3:8b", processor.WithConcurrentAnalysis(concurrent))
	if err != nil {
		t.Fatal(err)
	}
	return NewPipeline(p, store)
}

func defaultCompleter() *fakeCompleter {
	return &fakeCompleter{
		translation: "Не пристало ли нам, братья, начать старыми словами",
		summary:     "Автор размышляет о походе князя Игоря.",
		keywords:    "Игорь, поход, братья",
	}
}

func TestProcessTextSuccess(t *testing.T) {
	for _, concurrent := range []bool{false, true} {
		fc := defaultCompleter()
		store := &fakeStore{}
		replier := &fakeReplier{}

		processText(context.Background(), replier, textUpdate(100, oldRussian), newTestPipeline(t, fc, store, concurrent))

		want := []string{
			ackText,
			translationHeader + fc.translation,
			summaryHeader + fc.summary,
			keywordsHeader + "Игорь, поход, братья",
			savedText,
		}
		if got := replier.texts(); !reflect.DeepEqual(got, want) {
			t.Fatalf("concurrent=%v: replies = %q, want %q", concurrent, got, want)
		}
		if fc.calls != 3 {
			t.Errorf("concurrent=%v: inference calls = %d, want 3", concurrent, fc.calls)
		}

		if len(store.texts) != 1 {
			t.Fatalf("concurrent=%v: stored %d records, want 1", concurrent, len(store.texts))
		}
		rec := store.texts[0]
		if rec.UserID != 100 || rec.OriginalText != oldRussian {
			t.Errorf("concurrent=%v: unexpected record %+v", concurrent, rec)
		}
		if rec.Translation != fc.translation || rec.Summary != fc.summary || rec.Keywords != "Игорь, поход, братья" {
			t.Errorf("concurrent=%v: unexpected record %+v", concurrent, rec)
		}
	}
}

func TestProcessTextModelRepliesUseHTML(t *testing.T) {
	replier := &fakeReplier{}
	processText(context.Background(), replier, textUpdate(1, oldRussian), newTestPipeline(t, defaultCompleter(), &fakeStore{}, false))

	if replier.sent[0].ParseMode != "" {
		t.Error("acknowledgement should be plain text")
	}
	if replier.sent[1].ParseMode != models.ParseModeHTML || replier.sent[2].ParseMode != models.ParseModeHTML {
		t.Error("translation and summary should be sent as HTML")
	}
	if replier.sent[3].ParseMode != "" {
		t.Error("keywords should be plain text")
	}
}

func TestProcessTextSummarizeFails(t *testing.T) {
	fc := defaultCompleter()
	fc.failOn = "summarize"
	store := &fakeStore{}
	replier := &fakeReplier{}

	processText(context.Background(), replier, textUpdate(5, oldRussian), newTestPipeline(t, fc, store, false))

	want := []string{ackText, translationHeader + fc.translation, failureText}
	if got := replier.texts(); !reflect.DeepEqual(got, want) {
		t.Fatalf("replies = %q, want %q", got, want)
	}
	if len(store.texts) != 0 {
		t.Errorf("stored %d records, want 0", len(store.texts))
	}
}

func TestProcessTextKeywordsFail(t *testing.T) {
	fc := defaultCompleter()
	fc.failOn = "keywords"
	store := &fakeStore{}
	replier := &fakeReplier{}

	processText(context.Background(), replier, textUpdate(5, oldRussian), newTestPipeline(t, fc, store, true))

	want := []string{ackText, translationHeader + fc.translation, summaryHeader + fc.summary, failureText}
	if got := replier.texts(); !reflect.DeepEqual(got, want) {
		t.Fatalf("replies = %q, want %q", got, want)
	}
	if len(store.texts) != 0 {
		t.Errorf("stored %d records, want 0", len(store.texts))
	}
}

func TestProcessTextTranslateFails(t *testing.T) {
	fc := defaultCompleter()
	fc.failOn = "translate"
	store := &fakeStore{}
	replier := &fakeReplier{}

	processText(context.Background(), replier, textUpdate(5, oldRussian), newTestPipeline(t, fc, store, false))

	if got := replier.texts(); !reflect.DeepEqual(got, []string{ackText, failureText}) {
		t.Fatalf("replies = %q", got)
	}
	if fc.calls != 1 {
		t.Errorf("inference calls = %d, want 1", fc.calls)
	}
}

func TestProcessTextStorageFails(t *testing.T) {
	store := &fakeStore{err: errors.New("database is locked")}
	replier := &fakeReplier{}

	processText(context.Background(), replier, textUpdate(5, oldRussian), newTestPipeline(t, defaultCompleter(), store, false))

	got := replier.texts()
	if len(got) != 5 {
		t.Fatalf("replies = %q, want four results and a failure", got)
	}
	if got[4] != failureText {
		t.Errorf("last reply = %q, want failure text", got[4])
	}
}

func TestProcessTextTransportFailure(t *testing.T) {
	fc := defaultCompleter()
	store := &fakeStore{}
	replier := &fakeReplier{failAt: 1}

	processText(context.Background(), replier, textUpdate(5, oldRussian), newTestPipeline(t, fc, store, false))

	if fc.calls != 0 {
		t.Errorf("inference calls = %d, want 0 after failed acknowledgement", fc.calls)
	}
	if got := replier.texts(); !reflect.DeepEqual(got, []string{failureText}) {
		t.Errorf("replies = %q", got)
	}
}

func TestProcessTextHTMLFallback(t *testing.T) {
	fc := defaultCompleter()
	store := &fakeStore{}
	replier := &fakeReplier{failAt: 2}

	processText(context.Background(), replier, textUpdate(5, oldRussian), newTestPipeline(t, fc, store, false))

	got := replier.texts()
	if len(got) < 2 || got[1] != translationHeader+fc.translation {
		t.Fatalf("replies = %q, want plain translation after rejected HTML", got)
	}
	if replier.sent[1].ParseMode != "" {
		t.Error("fallback reply must not use HTML parse mode")
	}
	if len(store.texts) != 1 {
		t.Errorf("stored %d records, want 1", len(store.texts))
	}
}

func TestProcessTextIgnoresCommandsAndEmpty(t *testing.T) {
	fc := defaultCompleter()
	store := &fakeStore{}
	replier := &fakeReplier{}
	pipeline := newTestPipeline(t, fc, store, false)

	processText(context.Background(), replier, textUpdate(1, "/unknown"), pipeline)
	processText(context.Background(), replier, textUpdate(1, ""), pipeline)
	processText(context.Background(), replier, &models.Update{}, pipeline)

	if len(replier.sent) != 0 || fc.calls != 0 || len(store.texts) != 0 {
		t.Errorf("expected no side effects, got %d replies, %d calls, %d records", len(replier.sent), fc.calls, len(store.texts))
	}
}

func TestSplitMessage(t *testing.T) {
	long := strings.Repeat("а", 30) + "\n" + strings.Repeat("б", 30)

	chunks := splitMessage(long, 40)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	if chunks[0] != strings.Repeat("а", 30) || chunks[1] != strings.Repeat("б", 30) {
		t.Errorf("unexpected chunks %q", chunks)
	}

	noBreak := strings.Repeat("в", 50)
	chunks = splitMessage(noBreak, 20)
	if len(chunks) != 3 || chunks[0] != strings.Repeat("в", 20) || chunks[2] != strings.Repeat("в", 10) {
		t.Errorf("unexpected chunks %q", chunks)
	}

	if got := splitMessage("", 10); len(got) != 0 {
		t.Errorf("empty text produced %q", got)
	}
}

type inferenceSnapshotReplier struct {
	fakeReplier
	completer *fakeCompleter
	callsAt   []int
}

func (r *inferenceSnapshotReplier) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	r.completer.mu.Lock()
	r.callsAt = append(r.callsAt, r.completer.calls)
	r.completer.mu.Unlock()
	return r.fakeReplier.SendMessage(ctx, params)
}

func TestProcessTextSequentialInterleavesCallsAndReplies(t *testing.T) {
	fc := defaultCompleter()
	replier := &inferenceSnapshotReplier{completer: fc}

	processText(context.Background(), replier, textUpdate(1, oldRussian), newTestPipeline(t, fc, &fakeStore{}, false))

	// ack, translation, summary, keywords, saved
	want := []int{0, 1, 2, 3, 3}
	if !reflect.DeepEqual(replier.callsAt, want) {
		t.Errorf("inference calls at each send = %v, want %v", replier.callsAt, want)
	}
}

func TestProcessTextSummaryReplyFailureSkipsKeywords(t *testing.T) {
	fc := defaultCompleter()
	store := &fakeStore{}
	// ack, translation, then the summary send fails twice (HTML and plain)
	replier := &failingFromReplier{from: 3}

	processText(context.Background(), replier, textUpdate(1, oldRussian), newTestPipeline(t, fc, store, false))

	if fc.calls != 2 {
		t.Errorf("inference calls = %d, want 2", fc.calls)
	}
	if len(store.texts) != 0 {
		t.Errorf("stored %d records, want 0", len(store.texts))
	}
}

type failingFromReplier struct {
	fakeReplier
	from int
}

func (r *failingFromReplier) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	if r.calls+1 >= r.from {
		r.calls++
		return nil, errors.New("telegram: Too Many Requests")
	}
	return r.fakeReplier.SendMessage(ctx, params)
}

func TestProcessTextLongTranslationFallbackSendsEachLineOnce(t *testing.T) {
	lines := make([]string, 400)
	for i := range lines {
		lines[i] = fmt.Sprintf("строка %d текста перевода", i)
	}
	fc := defaultCompleter()
	fc.translation = strings.Join(lines, "\n")
	store := &fakeStore{}
	// send 1 is the ack, send 2 the first translation chunk, send 3 the second one
	replier := &fakeReplier{failAt: 3}

	processText(context.Background(), replier, textUpdate(1, oldRussian), newTestPipeline(t, fc, store, false))

	var delivered []string
	for _, text := range replier.texts() {
		for _, line := range strings.Split(text, "\n") {
			if strings.HasPrefix(line, "строка ") {
				delivered = append(delivered, line)
			}
		}
	}
	if !reflect.DeepEqual(delivered, lines) {
		t.Errorf("delivered %d translation lines, want each of %d exactly once in order", len(delivered), len(lines))
	}
	for _, p := range replier.sent {
		if utf8.RuneCountInString(p.Text) > maxTelegramMessageLength {
			t.Errorf("reply of %d runes exceeds the Telegram limit", utf8.RuneCountInString(p.Text))
		}
	}
	if len(store.texts) != 1 {
		t.Errorf("stored %d records, want 1", len(store.texts))
	}
}
