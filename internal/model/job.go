package model

type CreateJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Salary      string `json:"salary"`
}

type CreateJobResponse struct {
	ID string `json:"id"`
}

type GetJobRequest struct {
	ID string `path:"id"`
}

type GetJobResponse Job

type GetJobsRequest struct {
	Category string `json:"category"`
	Location string `json:"location"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

type GetJobsResponse struct {
	Jobs []Job `json:"jobs"`
}

type UpdateJobRequest struct {
	ID          string `path:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Salary      string `json:"salary"`
	IsOpen      *bool  `json:"is_open"`
}

type UpdateJobResponse struct{}

type DeleteJobRequest struct {
	ID string `path:"id"`
}

type DeleteJobResponse struct{}

type ApplyJobRequest struct {
	JobID       string `json:"job_id"`
	CoverLetter string `json:"cover_letter"`
}

type ApplyJobResponse struct {
	ID string `json:"id"`
}

type GetJobApplicationsRequest struct {
	JobID  string `path:"id"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetJobApplicationsResponse struct {
	Applications []JobApplication `json:"applications"`
}

type GetMyApplicationsRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetMyApplicationsResponse struct {
	Applications []JobApplication `json:"applications"`
}

type ReviewApplicationRequest struct {
	ID     string `path:"id"`
	Status string `json:"status"`
}

type ReviewApplicationResponse struct{}
