package xmltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	top := sample()
	for _, tc := range []struct {
		expr string
		want []string
	}{
		{"/system/hostname", []string{"r1"}},
		{"/system/server", []string{"1.1.1.1", "2.2.2.2"}},
		{"//server[. = '2.2.2.2']", []string{"2.2.2.2"}},
		{"/system/server[2]", []string{"2.2.2.2"}},
		{"/system/nothing", nil},
	} {
		t.Run(tc.expr, func(t *testing.T) {
			nodes, err := Query(top, tc.expr)
			if assert.NoError(t, err) {
				var got []string
				for _, n := range nodes {
					got = append(got, n.Body())
				}
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestQueryAttributeAndText(t *testing.T) {
	check := assert.New(t)
	top := sample()

	attr, err := QueryOne(top, "/system/@operation")
	if check.NoError(err) && check.NotNil(attr) {
		check.Equal(TypeAttribute, attr.Type)
		check.Equal("merge", attr.Value)
	}

	body, err := QueryOne(top, "/system/hostname/text()")
	if check.NoError(err) && check.NotNil(body) {
		check.Equal(TypeBody, body.Type)
		check.Equal("r1", body.Value)
	}

	sys := top.FindElement("system")
	host, err := QueryOne(sys, "hostname")
	if check.NoError(err) && check.NotNil(host) {
		check.Equal("hostname", host.Name)
	}
	parent, err := QueryOne(host, "..")
	if check.NoError(err) {
		check.Equal(sys, parent)
	}

	_, err = Query(top, "/system[")
	check.Error(err)
}

func TestEvaluate(t *testing.T) {
	check := assert.New(t)
	top := sample()

	v, err := Evaluate(top, "count(/system/server)")
	if check.NoError(err) {
		check.Equal(float64(2), v)
	}
	v, err = Evaluate(top, "string(/system/hostname)")
	if check.NoError(err) {
		check.Equal("r1", v)
	}
	v, err = Evaluate(top, "/system/server")
	if check.NoError(err) {
		check.Len(v, 2)
	}
}
