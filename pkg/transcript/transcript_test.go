package transcript_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/parleyhq/parley/pkg/transcript"
)

var _ = Describe("Transcript", func() {
	var t *transcript.Transcript

	BeforeEach(func() {
		t = transcript.New()
	})

	Describe("Append", func() {
		It("adds lines in order", func() {
			t.Append(transcript.SpeakerUser, "hello")
			t.Append(transcript.SpeakerAgent, "hi there")

			lines := t.Lines()
			Expect(lines).To(HaveLen(2))
			Expect(lines[0].Speaker).To(Equal(transcript.SpeakerUser))
			Expect(lines[0].Text).To(Equal("hello"))
			Expect(lines[1].Speaker).To(Equal(transcript.SpeakerAgent))
			Expect(lines[1].Text).To(Equal("hi there"))
		})

		It("assigns distinct, increasing IDs", func() {
			a := t.Append(transcript.SpeakerUser, "one")
			b := t.Append(transcript.SpeakerUser, "two")

			Expect(b).To(BeNumerically(">", a))
		})

		It("returns a copy from Lines", func() {
			t.Append(transcript.SpeakerUser, "original")

			lines := t.Lines()
			lines[0].Text = "mutated"

			Expect(t.Lines()[0].Text).To(Equal("original"))
		})
	})

	Describe("ReplaceLast", func() {
		It("overwrites only the newest line", func() {
			t.Append(transcript.SpeakerUser, "question")
			t.Append(transcript.SpeakerAgent, "…")

			Expect(t.ReplaceLast("answer")).To(Succeed())

			lines := t.Lines()
			Expect(lines[0].Text).To(Equal("question"))
			Expect(lines[1].Text).To(Equal("answer"))
		})

		It("does not create a line", func() {
			t.Append(transcript.SpeakerAgent, "…")
			Expect(t.ReplaceLast("done")).To(Succeed())
			Expect(t.Len()).To(Equal(1))
		})

		It("fails on an empty transcript", func() {
			err := t.ReplaceLast("anything")
			Expect(err).To(MatchError(transcript.ErrNoLineToReplace))
			Expect(t.Len()).To(BeZero())
		})
	})

	Describe("Replace", func() {
		It("targets a line by ID even after later appends", func() {
			id := t.Append(transcript.SpeakerAgent, "…")
			t.Append(transcript.SpeakerUser, "second question")
			t.Append(transcript.SpeakerAgent, "…")

			Expect(t.Replace(id, "first answer")).To(Succeed())

			lines := t.Lines()
			Expect(lines[0].Text).To(Equal("first answer"))
			Expect(lines[2].Text).To(Equal("…"))
		})

		It("fails for an unknown ID", func() {
			t.Append(transcript.SpeakerAgent, "…")
			err := t.Replace(transcript.LineID(999), "nope")
			Expect(err).To(MatchError(transcript.ErrLineNotFound))
		})
	})

	Describe("OnChange", func() {
		It("fires on appends and replacements", func() {
			calls := 0
			t.OnChange(func() { calls++ })

			id := t.Append(transcript.SpeakerAgent, "…")
			Expect(t.Replace(id, "done")).To(Succeed())

			Expect(calls).To(Equal(2))
		})

		It("does not fire when a replacement fails", func() {
			calls := 0
			t.OnChange(func() { calls++ })

			Expect(t.ReplaceLast("nope")).NotTo(Succeed())
			Expect(calls).To(BeZero())
		})

		It("allows the hook to read the transcript back", func() {
			var seen int
			t.OnChange(func() { seen = t.Len() })

			t.Append(transcript.SpeakerUser, "hello")
			Expect(seen).To(Equal(1))
		})
	})
})
