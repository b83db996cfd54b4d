package importer

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/harrisonrobin/takt/pkg/model"
	"github.com/harrisonrobin/takt/pkg/util"
)

// rootTaskUID is the project summary task MS Project writes first.
const rootTaskUID = "0"

// Project is the subset of an MS Project XML export that takt reads.
// Element names match in any namespace.
type Project struct {
	XMLName xml.Name
	Tasks   *ProjectTasks `xml:"Tasks"`
}

type ProjectTasks struct {
	Tasks []ProjectTask `xml:"Task"`
}

type ProjectTask struct {
	UID          string            `xml:"UID"`
	Name         string            `xml:"Name"`
	Start        string            `xml:"Start"`
	Finish       string            `xml:"Finish"`
	Location     string            `xml:"Location"`
	Trade        string            `xml:"Trade"`
	Predecessors []PredecessorLink `xml:"PredecessorLink"`
}

type PredecessorLink struct {
	PredecessorUID string `xml:"PredecessorUID"`
}

// ParseProjectXML decodes a project document. Non-UTF-8 encodings declared in
// the prolog are converted.
func ParseProjectXML(r io.Reader) (*Project, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var p Project
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode project xml: %w", err)
	}
	return &p, nil
}

// NormalizeProject converts project tasks to records, dropping unnamed tasks
// and the root summary task. A document that is not a Project yields nothing.
func NormalizeProject(p *Project) []model.Task {
	if p == nil || p.XMLName.Local != "Project" || p.Tasks == nil {
		return nil
	}

	var tasks []model.Task
	for _, t := range p.Tasks.Tasks {
		if t.Name == "" || t.UID == rootTaskUID {
			continue
		}
		tasks = append(tasks, model.Task{
			ID:           t.UID,
			Name:         t.Name,
			StartDate:    util.DatePortion(t.Start),
			EndDate:      util.DatePortion(t.Finish),
			Location:     t.Location,
			Trade:        t.Trade,
			Dependencies: t.dependencies(),
		})
	}
	return tasks
}

func (t ProjectTask) dependencies() string {
	uids := make([]string, len(t.Predecessors))
	for i, link := range t.Predecessors {
		uids[i] = link.PredecessorUID
	}
	return strings.Join(uids, ", ")
}
