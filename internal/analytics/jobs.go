package analytics

import "github.com/noah-isme/hiring-pipeline-api/internal/models"

// jobIndex keeps jobs in snapshot order and appends jobs referenced only by
// applications, in first-seen order.
type jobIndex struct {
	order []string
	jobs  map[string]models.Job
}

func newJobIndex(jobs []models.Job, apps []models.Application) *jobIndex {
	idx := &jobIndex{jobs: make(map[string]models.Job, len(jobs))}
	for _, j := range jobs {
		idx.add(j)
	}
	for _, a := range apps {
		if _, ok := idx.jobs[a.JobID]; !ok {
			idx.add(models.Job{ID: a.JobID})
		}
	}
	return idx
}

func (i *jobIndex) add(j models.Job) {
	if _, ok := i.jobs[j.ID]; ok {
		return
	}
	i.order = append(i.order, j.ID)
	i.jobs[j.ID] = j
}

func jobLabel(j models.Job) string {
	if j.Title != "" {
		return j.Title
	}
	return j.ID
}
