package main

import(
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/skypies/util/date"
	"github.com/skypies/util/gcp/gcs"

	"github.com/openpit/turndb/geomstore"
)

var(
	// The bigquery dataset (dest) is an entirely different google cloud project.

	// This, the 'src' project, needs its service worker account to be
	// added as an 'editor' to the 'dest' project, so that we can submit
	// bigquery load requests.

	// This is in the 'src' project
	folderGCS = "bigquery-geometry"

	// This is the 'dest' project
	bigqueryProject = "openpit-1000"
	bigqueryDataset = "public"
	bigqueryTableName = "geometry"
)

// A geometryRecord is one row in the published inventory: one road arm of one
// intersection, plus the intersection totals repeated for convenience.
type geometryRecord struct {
	Datestring       string  `json:"datestring"`
	IntersectionName string  `json:"intersection_name"`
	RoadID           string  `json:"road_id"`
	NumMarkers       int     `json:"num_markers"`
	BoundaryAreaSqm  float64 `json:"boundary_area_sqm"`
	OriginLat        float64 `json:"origin_lat"`
	OriginLong       float64 `json:"origin_long"`
}

// {{{ publishGeometryHandler

// /backend/publish-geometry
//  ?skipload=1  (write the GCS file, but don't submit the bigquery load job)

// As well as writing the data into a file in Cloud Storage, it will submit a
// load request into BigQuery to load that file.
func publishGeometryHandler(db geomstore.GeomDB, w http.ResponseWriter, r *http.Request) {
	tStart := time.Now()

	datestring := date.NowInPdt().Format("2006.01.02")
	filename := "geometry-"+datestring+".json"
	db.Infof("Starting /backend/publish-geometry: %s", filename)

	n,err := writeBigQueryGeometryGCSFile(db, datestring, folderGCS, filename)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.FormValue("skipload") == "" {
		if err := submitLoadJob(db, folderGCS, filename); err != nil {
			http.Error(w, "submitLoadJob failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(fmt.Sprintf("OK!\n%d records written to gs://%s/%s and job sent - took %s\n",
		n, folderGCS, filename, time.Since(tStart))))
}

// }}}
// {{{ writeBigQueryGeometryGCSFile

// Returns number of records written (which is zero if the file already exists)
func writeBigQueryGeometryGCSFile(db geomstore.GeomDB, datestring, foldername, filename string) (int, error) {
	ctx := db.Ctx()

	if exists,err := gcs.Exists(ctx, foldername, filename); err != nil {
		return 0,err
	} else if exists {
		return 0,nil
	}
	gcsHandle,err := gcs.OpenRW(ctx, foldername, filename, "application/json")
	if err != nil {
		return 0,err
	}
	encoder := json.NewEncoder(gcsHandle.IOWriter())

	areas, err := db.ListIntersections()
	if err != nil {
		return 0,err
	}
	markers, err := db.ListMarkers()
	if err != nil {
		return 0,err
	}

	// road arm counts, keyed intersection|road
	armCounts := map[string]map[string]int{}
	for _,m := range markers {
		if armCounts[m.IntersectionName] == nil {
			armCounts[m.IntersectionName] = map[string]int{}
		}
		armCounts[m.IntersectionName][m.RoadID]++
	}

	n := 0
	for _,ia := range areas {
		areaSqm := ia.Boundary().Area()
		for roadID,count := range armCounts[ia.Name] {
			rec := geometryRecord{
				Datestring:       datestring,
				IntersectionName: ia.Name,
				RoadID:           roadID,
				NumMarkers:       count,
				BoundaryAreaSqm:  areaSqm,
				OriginLat:        ia.OriginLat,
				OriginLong:       ia.OriginLong,
			}
			if err := encoder.Encode(rec); err != nil {
				return 0,err
			}
			n++
		}
	}

	if err := gcsHandle.Close(); err != nil {
		return 0, err
	}

	db.Infof("GCS bigquery file '%s' successfully written", filename)

	return n,nil
}

// }}}
// {{{ submitLoadJob

// https://cloud.google.com/bigquery/docs/loading-data-cloud-storage#bigquery-import-gcs-file-go
func submitLoadJob(db geomstore.GeomDB, gcsfolder, gcsfile string) error {
	ctx := db.Ctx()

	client,err := bigquery.NewClient(ctx, bigqueryProject)
	if err != nil {
		return fmt.Errorf("Creating bigquery client: %v", err)
	}
	myDataset := client.Dataset(bigqueryDataset)
	destTable := myDataset.Table(bigqueryTableName)

	gcsSrc := bigquery.NewGCSReference(fmt.Sprintf("gs://%s/%s", gcsfolder, gcsfile))
	gcsSrc.SourceFormat = bigquery.JSON
	gcsSrc.AllowJaggedRows = true

	loader := destTable.LoaderFrom(gcsSrc)
	loader.CreateDisposition = bigquery.CreateNever
	job,err := loader.Run(ctx)
	if err != nil {
		return fmt.Errorf("Submission of load job: %v", err)
	}

	time.Sleep(5 * time.Second)

	if status, err := job.Status(ctx); err != nil {
		return fmt.Errorf("Failure determining status: %v", err)
	} else if err := status.Err(); err != nil {
		detailedErrStr := ""
		for i,innerErr := range status.Errors {
			detailedErrStr += fmt.Sprintf(" [%2d] %v\n", i, innerErr)
		}
		db.Errorf("BiqQuery LoadJob error: %v\n--\n%s", err, detailedErrStr)
		return fmt.Errorf("Job error: %v\n--\n%s", err, detailedErrStr)
	} else {
		db.Infof("BiqQuery LoadJob status: done=%v, state=%s, %s",
			status.Done(), status.State, status)
	}

	return nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
