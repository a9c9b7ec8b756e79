// seed_universities.go seeds the reference university through the Allocator API.
//
// Usage:
//
//	go run scripts/seed_universities.go -api http://localhost:8700 -client seed
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
)

type researchRow struct {
	Exclusive     int `json:"exclusive"`
	SemiExclusive int `json:"semi_exclusive"`
	Simple        int `json:"simple"`
}

type university struct {
	Name                    string                 `json:"name"`
	RegionalCostFactor      float64                `json:"regional_cost_factor"`
	EconomiesOfScale        float64                `json:"economies_of_scale"`
	TotalGraduates          int                    `json:"total_graduates"`
	FacultyDistribution     map[string]float64     `json:"faculty_distribution"`
	AdmissionCourseStudents int                    `json:"admission_course_students"`
	AdmissionCourseHours    int                    `json:"admission_course_hours"`
	AuthoritiesRectors      int                    `json:"authorities_rectors"`
	AuthoritiesDeans        int                    `json:"authorities_deans"`
	AuthoritiesSecretaries  int                    `json:"authorities_secretaries"`
	NonTeachingCategoryA    int                    `json:"non_teaching_category_a"`
	NonTeachingCategoryB    int                    `json:"non_teaching_category_b"`
	InfrastructureSqm       float64                `json:"infrastructure_sqm"`
	GreenSpaceSqm           float64                `json:"green_space_sqm"`
	ResearchMatrix          map[string]researchRow `json:"research_matrix"`
	Fellowships             int                    `json:"fellowships"`
}

// career omits the matrix so the server loads the discipline's standard plan.
type career struct {
	Name                  string  `json:"name"`
	Discipline            string  `json:"discipline"`
	Type                  string  `json:"type"`
	FreshmanCount         int     `json:"freshman_count"`
	RetentionRate         float64 `json:"retention_rate"`
	ReenrolledCount       int     `json:"reenrolled_count"`
	AverageSubjectsPassed float64 `json:"average_subjects_passed"`
}

var modelUniversity = university{
	Name:               "Universidad Nacional Modelo",
	RegionalCostFactor: 1.0,
	EconomiesOfScale:   1.0,
	TotalGraduates:     980,
	FacultyDistribution: map[string]float64{
		"exclusive_percent":      20,
		"semi_exclusive_percent": 30,
		"simple_percent":         50,
	},
	AdmissionCourseStudents: 1500,
	AdmissionCourseHours:    120,
	AuthoritiesRectors:      2,
	AuthoritiesDeans:        12,
	AuthoritiesSecretaries:  40,
	NonTeachingCategoryA:    150,
	NonTeachingCategoryB:    700,
	InfrastructureSqm:       55000,
	GreenSpaceSqm:           100000,
	ResearchMatrix: map[string]researchRow{
		"cat1":  {Exclusive: 10, SemiExclusive: 5, Simple: 2},
		"cat2":  {Exclusive: 20, SemiExclusive: 10, Simple: 5},
		"cat34": {Exclusive: 40, SemiExclusive: 20, Simple: 10},
		"cat5":  {Exclusive: 10, SemiExclusive: 10, Simple: 10},
	},
	Fellowships: 50,
}

var modelCareers = []career{
	{Name: "Medicina", Discipline: "medicine", Type: "long", FreshmanCount: 1200, RetentionRate: 0.75, ReenrolledCount: 3500, AverageSubjectsPassed: 4.5},
	{Name: "Abogacía", Discipline: "law", Type: "long", FreshmanCount: 2000, RetentionRate: 0.60, ReenrolledCount: 5000, AverageSubjectsPassed: 2.5},
}

func main() {
	apiURL := flag.String("api", "http://localhost:8700", "Allocator API base URL")
	clientID := flag.String("client", "seed", "X-Client-ID header value")
	dryRun := flag.Bool("dry-run", false, "print payloads without posting")
	flag.Parse()

	if *dryRun {
		out, _ := json.MarshalIndent(map[string]interface{}{
			"university": modelUniversity,
			"careers":    modelCareers,
		}, "", "  ")
		fmt.Println(string(out))
		return
	}

	client := &http.Client{}

	var created struct {
		ID string `json:"university_id"`
	}
	if err := post(client, *apiURL+"/api/v1/universities", *clientID, modelUniversity, &created); err != nil {
		log.Fatalf("create university: %v", err)
	}
	log.Printf("created %q (%s)", modelUniversity.Name, created.ID)

	added, skipped := 0, 0
	for _, c := range modelCareers {
		if err := post(client, *apiURL+"/api/v1/universities/"+created.ID+"/careers", *clientID, c, nil); err != nil {
			log.Printf("skip %q: %v", c.Name, err)
			skipped++
			continue
		}
		added++
	}

	log.Printf("done: %d careers added, %d skipped", added, skipped)
}

func post(client *http.Client, url, clientID string, payload, out interface{}) error {
	body, _ := json.Marshal(payload)
	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-ID", clientID)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
