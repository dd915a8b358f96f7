package resource_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	resource "github.com/JohnPlummer/jp-go-resource"
)

var _ = Describe("ParseAPIError", func() {
	Context("wrapped error lists", func() {
		It("returns the first error from an apiErrors list", func() {
			raw := []byte(`{"apiErrors":[` +
				`{"type":"validation","code":"invalid_email","source":"email","message":"email address is invalid"},` +
				`{"type":"validation","code":"required","source":"name","message":"name is required"}]}`)

			apiErr := resource.ParseAPIError(raw)

			Expect(apiErr).NotTo(BeNil())
			Expect(apiErr.Type).To(Equal("validation"))
			Expect(apiErr.Code).To(Equal("invalid_email"))
			Expect(apiErr.Source).To(Equal("email"))
			Expect(apiErr.Message).To(Equal("email address is invalid"))
		})

		It("returns nothing for an empty apiErrors list", func() {
			Expect(resource.ParseAPIError([]byte(`{"apiErrors":[]}`))).To(BeNil())
		})

		It("tolerates extra top-level fields around the list", func() {
			raw := []byte(`{"status":422,"apiErrors":[{"message":"nope"}]}`)

			apiErr := resource.ParseAPIError(raw)

			Expect(apiErr).NotTo(BeNil())
			Expect(apiErr.Message).To(Equal("nope"))
		})
	})

	Context("bare error objects", func() {
		It("returns a bare error object", func() {
			raw := []byte(`{"type":"auth","code":"expired_token","source":"header","message":"token has expired"}`)

			apiErr := resource.ParseAPIError(raw)

			Expect(apiErr).NotTo(BeNil())
			Expect(apiErr.Type).To(Equal("auth"))
			Expect(apiErr.Code).To(Equal("expired_token"))
			Expect(apiErr.Source).To(Equal("header"))
			Expect(apiErr.Message).To(Equal("token has expired"))
		})

		It("fills only the fields present", func() {
			apiErr := resource.ParseAPIError([]byte(`{"message":"not found"}`))

			Expect(apiErr).NotTo(BeNil())
			Expect(apiErr.Message).To(Equal("not found"))
			Expect(apiErr.Type).To(BeEmpty())
			Expect(apiErr.Code).To(BeEmpty())
			Expect(apiErr.Source).To(BeEmpty())
		})

		It("classifies by the top-level key, not by key text inside values", func() {
			apiErr := resource.ParseAPIError([]byte(`{"message":"the apiErrors service is down"}`))

			Expect(apiErr).NotTo(BeNil())
			Expect(apiErr.Message).To(Equal("the apiErrors service is down"))
		})
	})

	Context("unparseable bodies", func() {
		DescribeTable("returns nothing",
			func(raw string) {
				Expect(resource.ParseAPIError([]byte(raw))).To(BeNil())
			},
			Entry("empty input", ""),
			Entry("malformed JSON", `{"apiErrors":`),
			Entry("plain text", "internal server error"),
			Entry("a JSON string", `"error"`),
			Entry("a JSON number", `42`),
			Entry("a JSON array", `[{"message":"hi"}]`),
			Entry("JSON null", `null`),
			Entry("an empty object", `{}`),
			Entry("an object with unrelated fields", `{"status":500,"path":"/users"}`),
			Entry("an apiErrors value of the wrong type", `{"apiErrors":"broken"}`),
			Entry("a field of the wrong type", `{"message":42}`),
		)

		It("never panics on arbitrary input", func() {
			Expect(func() {
				resource.ParseAPIError([]byte{0xff, 0xfe, 0x00})
			}).NotTo(Panic())
		})
	})
})
