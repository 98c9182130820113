package llm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/parleyhq/parley/pkg/llm"
)

var _ = Describe("DecodePayload", func() {
	Context("with a list payload", func() {
		It("classifies and returns the first result", func() {
			shape, res := llm.DecodePayload([]byte(`[{"generated_text":"hello"},{"generated_text":"ignored"}]`))

			Expect(shape).To(Equal(llm.ShapeList))
			Expect(res).NotTo(BeNil())
			Expect(res.GeneratedText).NotTo(BeNil())
			Expect(*res.GeneratedText).To(Equal("hello"))
		})

		It("returns a nil result for an empty list", func() {
			shape, res := llm.DecodePayload([]byte(`[]`))

			Expect(shape).To(Equal(llm.ShapeList))
			Expect(res).To(BeNil())
		})

		It("keeps an absent field distinguishable", func() {
			shape, res := llm.DecodePayload([]byte(`[{"score":0.9}]`))

			Expect(shape).To(Equal(llm.ShapeList))
			Expect(res).NotTo(BeNil())
			Expect(res.GeneratedText).To(BeNil())
		})
	})

	Context("with an object payload", func() {
		It("classifies and returns the object", func() {
			shape, res := llm.DecodePayload([]byte(`{"generated_text":"42"}`))

			Expect(shape).To(Equal(llm.ShapeObject))
			Expect(res).NotTo(BeNil())
			Expect(*res.GeneratedText).To(Equal("42"))
		})

		It("returns a nil text field when absent", func() {
			shape, res := llm.DecodePayload([]byte(`{"foo":"bar"}`))

			Expect(shape).To(Equal(llm.ShapeObject))
			Expect(res).NotTo(BeNil())
			Expect(res.GeneratedText).To(BeNil())
		})
	})

	Context("with anything else", func() {
		It("rejects non-JSON bodies", func() {
			shape, res := llm.DecodePayload([]byte(`<html>503</html>`))

			Expect(shape).To(Equal(llm.ShapeUnrecognized))
			Expect(res).To(BeNil())
		})

		It("rejects scalar JSON", func() {
			shape, _ := llm.DecodePayload([]byte(`"just a string"`))
			Expect(shape).To(Equal(llm.ShapeUnrecognized))
		})
	})
})

var _ = Describe("GeneratedText", func() {
	It("extracts text from a list payload", func() {
		text, ok := llm.GeneratedText([]byte(`[{"generated_text":"hello"}]`))
		Expect(ok).To(BeTrue())
		Expect(text).To(Equal("hello"))
	})

	It("extracts text from an object payload", func() {
		text, ok := llm.GeneratedText([]byte(`{"generated_text":"42"}`))
		Expect(ok).To(BeTrue())
		Expect(text).To(Equal("42"))
	})

	It("reports absence for malformed payloads", func() {
		_, ok := llm.GeneratedText([]byte(`{"foo":"bar"}`))
		Expect(ok).To(BeFalse())
	})

	It("treats a present-but-empty field as absent", func() {
		_, ok := llm.GeneratedText([]byte(`[{"generated_text":""}]`))
		Expect(ok).To(BeFalse())

		_, ok = llm.GeneratedText([]byte(`{"generated_text":""}`))
		Expect(ok).To(BeFalse())
	})

	It("reports absence for unrecognized bodies", func() {
		_, ok := llm.GeneratedText([]byte(`not json at all`))
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("StripPromptEcho", func() {
	It("removes an echoed prompt prefix", func() {
		Expect(llm.StripPromptEcho("HelloHow are you?", "Hello")).To(Equal("How are you?"))
	})

	It("trims whitespace around the remainder", func() {
		Expect(llm.StripPromptEcho("Hello, world. Hello", "Hello, world.")).To(Equal("Hello"))
	})

	It("leaves non-overlapping text unchanged", func() {
		Expect(llm.StripPromptEcho("42", "What is 6*7?")).To(Equal("42"))
	})

	It("removes only the first occurrence", func() {
		Expect(llm.StripPromptEcho("say hi, say hi again", "say hi")).To(Equal(", say hi again"))
	})

	It("handles an empty prompt", func() {
		Expect(llm.StripPromptEcho("  text  ", "")).To(Equal("text"))
	})
})
