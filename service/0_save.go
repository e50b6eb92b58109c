package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/fulldump/apitest"
)

// Save writes a markdown example of the request and response to the
// directory in API_EXAMPLES_PATH. It does nothing when the variable is unset.
func Save(response *apitest.Response, title, description string) {

	examplesPath := os.Getenv("API_EXAMPLES_PATH")
	if examplesPath == "" {
		return
	}

	request := response.Request

	query := request.URL.RawQuery
	if query != "" {
		query = "?" + query
	}

	s := &strings.Builder{}
	fmt.Fprintf(s, "# %s\n%s\n", title, cropTabs(description))

	s.WriteString("Curl example:\n\n```sh\ncurl")
	if request.Method != "GET" {
		fmt.Fprintf(s, " -X %s", request.Method)
	}
	fmt.Fprintf(s, " \"https://example.com%s%s\"", request.URL.Path, query)
	for k, l := range request.Header {
		for _, v := range l {
			fmt.Fprintf(s, " \\\n-H \"%s: %s\"", k, v)
		}
	}
	requestBody := formatJSON(response.BodyRequestString())
	if requestBody != "" {
		fmt.Fprintf(s, " \\\n-d '%s'", requestBody)
	}
	s.WriteString("\n```\n\n\n")

	s.WriteString("HTTP request/response example:\n\n```http\n")
	fmt.Fprintf(s, "%s %s%s %s\nHost: example.com\n", request.Method, request.URL.Path, query, request.Proto)
	for k, l := range request.Header {
		for _, v := range l {
			fmt.Fprintf(s, "%s: %s\n", k, v)
		}
	}
	fmt.Fprintf(s, "\n%s\n\n", requestBody)

	fmt.Fprintf(s, "%s %s\n", response.Proto, response.Status)
	headerKeys := make([]string, 0, len(response.Header))
	for k := range response.Header {
		headerKeys = append(headerKeys, k)
	}
	slices.Sort(headerKeys)
	for _, k := range headerKeys {
		if k == "Date" {
			continue
		}
		for _, v := range response.Header[k] {
			fmt.Fprintf(s, "%s: %s\n", k, v)
		}
	}
	fmt.Fprintf(s, "\n%s\n```\n\n\n", formatJSON(response.BodyString()))

	filename := strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".md"
	p := path.Join(examplesPath, path.Clean(filename))
	fmt.Println("Saving", p)
	err := os.WriteFile(p, []byte(s.String()), 0666)
	if err != nil {
		fmt.Println("Saving err:", err)
	}
}

func formatJSON(body string) string {

	var i interface{}
	err := json.Unmarshal([]byte(body), &i)
	if err != nil {
		return body
	}

	b, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		return body
	}

	return string(b)
}

// cropTabs removes the common tab indentation of a raw string literal.
func cropTabs(d string) string {
	lines := strings.Split(d, "\n")

	minTabs := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, "\t"))
		if minTabs < 0 || n < minTabs {
			minTabs = n
		}
	}
	if minTabs <= 0 {
		return d
	}

	prefix := strings.Repeat("\t", minTabs)
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}
